package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	hrms "github.com/Kimutai-cloud/HRMS-sub002"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
)

// presetFile is the YAML document exchanged by preset export/import.
type presetFile struct {
	Presets []presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

func presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved filter presets",
	}

	cmd.AddCommand(presetsExportCmd())
	cmd.AddCommand(presetsImportCmd())

	return cmd
}

func presetsExportCmd() *cobra.Command {
	var (
		envFile string
		dataDir string
		dbURL   string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved presets as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(envFile, dataDir, dbURL)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			presets, err := client.Presets.ListPresets(cmd.Context())
			if err != nil {
				return fmt.Errorf("list presets: %w", err)
			}

			doc := presetFile{Presets: make([]presetEntry, 0, len(presets))}
			for _, p := range presets {
				doc.Presets = append(doc.Presets, presetEntry{
					Name:  p.Name,
					Query: p.State.Encode(),
				})
			}

			out, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshal presets: %w", err)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return os.WriteFile(output, out, 0o644)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "Database URL")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, or - for stdout")

	return cmd
}

func presetsImportCmd() *cobra.Command {
	var (
		envFile string
		dataDir string
		dbURL   string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import presets from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read presets file: %w", err)
			}

			var doc presetFile
			if err := yaml.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parse presets file: %w", err)
			}

			client, err := newClient(envFile, dataDir, dbURL)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			for _, entry := range doc.Presets {
				saved, err := client.Presets.SavePreset(cmd.Context(), entry.Name, filter.Parse(entry.Query))
				if err != nil {
					return fmt.Errorf("save preset %q: %w", entry.Name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%s)\n", saved.Name, saved.ID)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "Database URL")

	return cmd
}

// newClient builds an hrms client for one-shot CLI commands.
func newClient(envFile, dataDir, dbURL string) (*hrms.Client, error) {
	cfg, err := loadConfig(envFile, dataDir, dbURL, "")
	if err != nil {
		return nil, err
	}

	client, err := hrms.New(hrms.WithConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("create hrms client: %w", err)
	}
	return client, nil
}
