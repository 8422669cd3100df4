package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"safehours/config"
	"safehours/duty"
)

func SetupCommands(a *App) *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	open := func(cmd *cobra.Command, args []string) error {
		return a.Open(configPath, verbose)
	}

	// root command
	rootCmd := &cobra.Command{
		Use:               "safehours",
		Short:             "Log instructor duty activities and check them against duty and rest limits",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: open,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.Close()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// command for creating a new logbook or switching to an existing one
	logbookCmd := &cobra.Command{
		Use:   "logbook [name]",
		Short: "Create or change logbook, or list logbooks when no name is given",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if err := a.Open(configPath, verbose); err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			defer a.Close()
			names, err := a.repo.GetLogbookNames()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.ListLogbooks()
			}
			return a.ChangeLogbook(args[0])
		},
	}

	// command for logging a new activity
	var candidate duty.Candidate
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.AddActivity(candidate)
		},
	}
	addCmd.Flags().StringVarP(&candidate.Date, "date", "d", "", "activity date, YYYY-MM-DD (default today)")
	addCmd.Flags().StringVarP(&candidate.Start, "start", "s", "", "start time, HH:MM (default now)")
	addCmd.Flags().StringVarP(&candidate.Duration, "duration", "t", "", "duration in hours, e.g. 2.1")
	addCmd.Flags().StringVarP(&candidate.Kind, "kind", "k", "", "Flight, SIM/ATD, Ground or Other (prompted when empty)")
	addCmd.Flags().StringVarP(&candidate.PrePost, "prepost", "p", "", "pre/post hours for Flight and SIM/ATD")
	addCmd.MarkFlagRequired("duration")
	addCmd.RegisterFlagCompletionFunc("kind", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		kinds := make([]string, 0, len(duty.Kinds))
		for _, k := range duty.Kinds {
			kinds = append(kinds, k.String())
		}
		return kinds, cobra.ShellCompDirectiveNoFileComp
	})

	// command for changing one field of a logged activity
	editCmd := &cobra.Command{
		Use:       "edit <index> <start|end|kind|prepost> <value>",
		Short:     "Change a field of a logged activity",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"start", "end", "kind", "prepost"},
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.EditActivity(index, args[1], args[2])
		},
	}

	// command for removing a logged activity
	deleteCmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete a logged activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.DeleteActivity(index)
		},
	}

	// command for listing activities
	var listDate string
	listCmd := &cobra.Command{
		Use:       "list [day|week|month|year|all]",
		Short:     "List logged activities around the target date",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: Windows,
		RunE: func(cmd *cobra.Command, args []string) error {
			window := WindowAll
			if len(args) > 0 {
				window = Window(args[0])
			}
			target, err := a.ParseTarget(listDate)
			if err != nil {
				return err
			}
			return a.Display(window, target)
		},
	}
	listCmd.Flags().StringVarP(&listDate, "date", "d", "", "target date, YYYY-MM-DD (default today)")

	// command for the duty limit report
	var reportDate string
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Show duty and rest limits for the target date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := a.ParseTarget(reportDate)
			if err != nil {
				return err
			}
			return a.Report(target)
		},
	}
	reportCmd.Flags().StringVarP(&reportDate, "date", "d", "", "target date, YYYY-MM-DD (default today)")

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the regulations behind each limit",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.LoadConfig(configPath, verbose)
		},
		Run: func(cmd *cobra.Command, args []string) {
			a.Rules()
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the active logbook to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Export(args[0])
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the active logbook with a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.Import(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", path)
			return nil
		},
	}
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.LoadConfig(configPath, verbose); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "storage.path: %s\nstorage.logbook: %s\nstorage.busy_retries: %d\ndisplay.color: %t\nlog.level: %s\n",
				a.cfg.Storage.Path, a.cfg.Storage.Logbook, a.cfg.Storage.BusyRetries, a.cfg.Display.Color, a.cfg.Log.Level)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	// add commands
	rootCmd.AddCommand(logbookCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)

	return rootCmd
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: use the # column from 'list'", s)
	}
	return index, nil
}
