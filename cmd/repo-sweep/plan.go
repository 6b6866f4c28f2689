package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagPlanYAML bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the resolved sweep plan without touching the filesystem",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := loadPlan(cfg)
		if err != nil {
			return err
		}

		if flagPlanYAML {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(p)
		}

		for _, cat := range p.Categories {
			fmt.Printf("%s:\n", cat.Name)
			for _, t := range cat.Targets {
				fmt.Printf("  %-9s %s\n", t.Kind, t.Pattern)
			}
		}
		if len(p.Retained) > 0 {
			fmt.Println("Retained:")
			for _, r := range p.Retained {
				fmt.Printf("  %s\n", r)
			}
		}
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&flagPlan, "plan", "", "Path to a YAML sweep plan (default: built-in plan)")
	planCmd.Flags().BoolVar(&flagPlanYAML, "yaml", false, "Print the plan as YAML")
}
