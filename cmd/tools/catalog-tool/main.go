// cmd/tools/catalog-tool/main.go

// catalog-tool maintains the activities seed file: validate it against the
// catalog schema, list its contents, or add a new activity.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"activities-service/internal/models"
	"activities-service/pkg/seed"
)

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	addPath := addCmd.String("path", "configs/activities.json", "Path to seed file")
	name := addCmd.String("name", "", "Activity name (e.g., Robotics Club)")
	description := addCmd.String("description", "", "Description")
	schedule := addCmd.String("schedule", "", "Human-readable meeting time")
	maxParticipants := addCmd.Int("max", 0, "Maximum participants")

	listPath := listCmd.String("path", "configs/activities.json", "Path to seed file")
	validatePath := validateCmd.String("path", "configs/activities.json", "Path to seed file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *name == "" || *description == "" || *schedule == "" || *maxParticipants <= 0 {
			fmt.Println("Error: name, description, schedule, and a positive max are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		if err := addActivity(*addPath, *name, *description, *schedule, *maxParticipants); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added %q to %s\n", *name, *addPath)

	case "list":
		listCmd.Parse(os.Args[2:])
		if err := listActivities(*listPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := seed.LoadFile(*validatePath)
		if err != nil {
			fmt.Printf("Invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Valid: %d activities\n", len(reg))

	default:
		help()
		os.Exit(1)
	}
}

func addActivity(path, name, description, schedule string, maxParticipants int) error {
	reg, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	if _, exists := reg[name]; exists {
		return fmt.Errorf("activity %q already exists", name)
	}

	reg[name] = models.Activity{
		Description:     description,
		Schedule:        schedule,
		MaxParticipants: maxParticipants,
		Participants:    []string{},
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func listActivities(path string) error {
	reg, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		act := reg[name]
		fmt.Printf("%-20s %s (%d/%d signed up)\n", name, act.Schedule, len(act.Participants), act.MaxParticipants)
	}
	return nil
}

func help() {
	fmt.Println(`Usage: catalog-tool <command> [flags]

Commands:
  add       Add an activity to the seed file
  list      Print the activities in the seed file
  validate  Validate the seed file against the catalog schema`)
}
