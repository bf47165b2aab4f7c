package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/domain"
	"github.com/chris/timely/internal/prompt"
)

// --- next / plan / morning ---

func newAskCmd(use, short string, intent prompt.Intent) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			uc, err := a.agent.Context(strings.Join(args, " "))
			if err != nil {
				return err
			}
			energy, _ := cmd.Flags().GetString("energy")
			mode, _ := cmd.Flags().GetString("mode")
			if energy != "" || mode != "" {
				over := domain.Assemble(domain.Request{EnergyLevel: energy, PersonalityMode: mode}, uc.CurrentTime)
				if energy != "" {
					uc.EnergyLevel = over.EnergyLevel
				}
				if mode != "" {
					uc.PersonalityMode = over.PersonalityMode
				}
			}

			res := a.agent.Dispatch(cmd.Context(), intent, uc)
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringP("energy", "e", "", "energy level for this request (low, medium, high)")
	cmd.Flags().StringP("mode", "m", "", "personality for this request (coach, friend, strict, zen)")
	return cmd
}

// --- task ---

func newTaskCmd() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage stored tasks",
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority, _ := cmd.Flags().GetString("priority")
			duration, _ := cmd.Flags().GetInt("duration")
			category, _ := cmd.Flags().GetString("category")

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			in := domain.TaskInput{Title: strings.Join(args, " "), Priority: priority, Category: category}
			if duration > 0 {
				in.EstimatedDuration = &duration
			}
			t, err := a.db.CreateTask(domain.NormalizeTask(in))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' noted! (%s)\n", t.Title, t.ID[:8])
			return nil
		},
	}
	addCmd.Flags().StringP("priority", "p", domain.PriorityMedium, "low, medium, high or urgent")
	addCmd.Flags().IntP("duration", "d", domain.DefaultDuration, "estimated minutes")
	addCmd.Flags().StringP("category", "c", domain.DefaultCategory, "category")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			tasks, err := a.db.ListOpenTasks()
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks, time.Now())
			return nil
		},
	}

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task done (an id prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.db.CompleteTask(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done: %s ✅\n", t.Title)
			return nil
		},
	}

	taskCmd.AddCommand(addCmd, listCmd, doneCmd)
	return taskCmd
}

// --- prefs ---

func newPrefsCmd() *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved preferences",
	}

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Show preferences",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			keys := []string{db.PrefEnergy, db.PrefPersonality, db.PrefDiscordUserID}
			if len(args) == 1 {
				keys = args
			}
			for _, k := range keys {
				v, err := a.db.GetPreference(k)
				if err != nil {
					return err
				}
				if v == "" {
					v = "(unset)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, v)
			}
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a preference (energy_level, personality_mode, discord_user_id)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			value := args[1]
			if args[0] != db.PrefDiscordUserID {
				value = strings.ToLower(strings.TrimSpace(value))
			}
			if err := a.db.SetPreference(args[0], value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
			return nil
		},
	}

	prefsCmd.AddCommand(getCmd, setCmd)
	return prefsCmd
}

// --- history ---

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			checkIns, err := a.db.ListCheckIns(limit)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), checkIns, time.Now())
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 10, "number of entries")
	return cmd
}
