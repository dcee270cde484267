// cmd/tools/farmer-registry/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"pbf-marketplace/pkg/registry"
)

var registryPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	removeCmd := flag.NewFlagSet("remove", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	for _, fs := range []*flag.FlagSet{addCmd, removeCmd, listCmd, validateCmd} {
		fs.StringVar(&registryPath, "path", "configs/farmers.json", "Path to registry file")
	}

	name := addCmd.String("name", "", "Farmer name (e.g., Maria Garcia)")
	email := addCmd.String("email", "", "Notification email address")
	product := addCmd.String("product", "", "Offering the farmer grows (e.g., tomato)")

	removeEmail := removeCmd.String("email", "", "Email of the entry to remove")
	removeProduct := removeCmd.String("product", "", "Product of the entry to remove")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *name == "" || *email == "" || *product == "" {
			fmt.Println("Error: name, email, and product are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		if err := addFarmer(registry.Farmer{Name: *name, Email: *email, Product: *product}); err != nil {
			fmt.Printf("Error adding farmer: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added farmer: %s (%s)\n", *name, *product)

	case "remove":
		removeCmd.Parse(os.Args[2:])
		if *removeEmail == "" || *removeProduct == "" {
			fmt.Println("Error: email and product are required for remove.")
			removeCmd.Usage()
			os.Exit(1)
		}
		if err := removeFarmer(*removeEmail, *removeProduct); err != nil {
			fmt.Printf("Error removing farmer: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %s for %s\n", *removeEmail, *removeProduct)

	case "list":
		listCmd.Parse(os.Args[2:])
		if err := listFarmers(); err != nil {
			fmt.Printf("Error listing farmers: %v\n", err)
			os.Exit(1)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(registryPath)
		if err == nil {
			err = reg.Validate()
		}
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d farmers.\n", len(reg.Farmers))

	case "help":
		fallthrough
	default:
		help()
	}
}

func addFarmer(f registry.Farmer) error {
	now := time.Now()
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = registry.NewRegistry(now)
	}

	if err := reg.Add(f, now); err != nil {
		return err
	}
	return registry.SaveRegistry(reg, registryPath)
}

func removeFarmer(email, product string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if !reg.Remove(email, product, time.Now()) {
		return fmt.Errorf("no entry for %s offering %s", email, product)
	}
	return registry.SaveRegistry(reg, registryPath)
}

func listFarmers() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tPRODUCT")
	for _, f := range reg.Farmers {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Email, f.Product)
	}
	return w.Flush()
}

func help() {
	fmt.Print(`
Usage: farmer-registry <command> [flags]

Commands:
  add       Register a farmer and the product they grow
  remove    Remove a farmer's product entry
  list      Print every registered farmer
  validate  Validate the registry file
  help      Show this help message

Examples:
  farmer-registry add -name "Maria Garcia" -email maria@example.com -product tomato
  farmer-registry remove -email maria@example.com -product tomato
  farmer-registry validate -path configs/farmers.json

Use 'farmer-registry <command> -h' for more information about a command.
` + "\n")
}
