package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/diwise/medication-reminder/internal/pkg/application/alarms"
	"github.com/diwise/medication-reminder/internal/pkg/application/medications"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/kvstore"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/notifications"
	"github.com/diwise/medication-reminder/pkg/types"
)

type OpenFunc func(ctx context.Context, cfg kvstore.Config) (kvstore.Store, error)

type app struct {
	open   OpenFunc
	cfg    kvstore.Config
	kv     kvstore.Store
	store  medications.MedicationStore
	alarms alarms.AlarmService
}

// NewRootCommand wires the medication commands against the KV backend
// returned by open. Alarms are listed and toggled only, the CLI never
// registers notifications.
func NewRootCommand(open OpenFunc) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:           "medctl",
		Short:         "Manage medications and their alarms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			kv, err := a.open(cmd.Context(), a.cfg)
			if err != nil {
				return fmt.Errorf("could not open storage: %w", err)
			}

			a.kv = kv
			a.store = medications.New(kv)
			a.alarms = alarms.New(a.store, notifications.NewUnsupported())

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.kv != nil {
				return a.kv.Close()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.Type, "storage", kvstore.TypeBadger, "storage backend (memory, badger, sqlite, postgres)")
	flags.StringVar(&a.cfg.Path, "path", "medications.db", "database path for badger and sqlite")
	flags.StringVar(&a.cfg.DSN, "dsn", "", "connection string for postgres")

	root.AddCommand(
		a.listCommand(),
		a.addCommand(),
		a.removeCommand(),
		a.alarmsCommand(),
		a.toggleCommand(),
	)

	return root
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List medications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meds := a.store.ListAll(cmd.Context())

			rows := [][]string{}
			for _, m := range meds {
				rows = append(rows, []string{
					m.ID, m.Name, m.Dosage, strings.Join(m.Schedule, ","), strconv.Itoa(m.Quantity), onOff(m.AlarmsEnabled),
				})
			}

			render(cmd.OutOrStdout(), []string{"ID", "Name", "Dosage", "Schedule", "Quantity", "Alarms"}, rows)
			return nil
		},
	}
}

func (a *app) addCommand() *cobra.Command {
	m := types.NewMedication{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a medication",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range m.Schedule {
				if _, _, err := alarms.ParseTimeOfDay(t); err != nil {
					return err
				}
			}

			if len(m.Schedule) == 0 {
				return fmt.Errorf("at least one time of day is required")
			}

			created, ok := a.store.Create(cmd.Context(), m)
			if !ok {
				return fmt.Errorf("could not add medication %s", m.Name)
			}

			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&m.Name, "name", "", "medication name")
	cmd.Flags().StringVar(&m.Dosage, "dosage", "", "dosage, e.g. 100mg")
	cmd.Flags().StringSliceVar(&m.Schedule, "schedule", nil, "comma separated times of day as HH:MM")
	cmd.Flags().IntVar(&m.Quantity, "quantity", 0, "number of doses on hand")
	cmd.Flags().BoolVar(&m.AlarmsEnabled, "alarms", true, "enable alarms")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("dosage")
	cmd.MarkFlagRequired("schedule")

	return cmd
}

func (a *app) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a medication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.store.Delete(cmd.Context(), args[0]) {
				return fmt.Errorf("could not remove medication %s", args[0])
			}
			return nil
		},
	}
}

func (a *app) alarmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alarms",
		Short: "List active alarms ordered by time of day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{}
			for _, al := range a.alarms.DeriveActiveAlarms(cmd.Context()) {
				rows = append(rows, []string{al.Time, al.AlarmID, al.MedicationName, al.Dosage})
			}

			render(cmd.OutOrStdout(), []string{"Time", "Alarm", "Medication", "Dosage"}, rows)
			return nil
		},
	}
}

func (a *app) toggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "toggle <alarm id> <on|off>",
		Short:     "Enable or disable the alarms of the medication an alarm belongs to",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var enabled bool
			switch args[1] {
			case "on":
				enabled = true
			case "off":
				enabled = false
			default:
				return fmt.Errorf("expected on or off, got %q", args[1])
			}

			if !a.alarms.ToggleAlarm(cmd.Context(), args[0], enabled) {
				return fmt.Errorf("no medication found for alarm %s", args[0])
			}
			return nil
		},
	}
}

func render(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
