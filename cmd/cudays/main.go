package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cudays/internal/app"
	"cudays/internal/config"
	"cudays/internal/feedserver"
	"cudays/internal/ics"
	"cudays/internal/model"
	"cudays/internal/schedule"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a wired App. The caller must defer
// a.Close().
func newApp(ctx context.Context) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// parseDay parses a YYYY-MM-DD argument.
func parseDay(s string) (model.Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return model.Day{}, fmt.Errorf("invalid day %q (want YYYY-MM-DD)", s)
	}
	return model.Day{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// parsePk parses an event identity argument.
func parsePk(s string) (int, error) {
	pk, err := strconv.Atoi(s)
	if err != nil || pk <= 0 {
		return 0, fmt.Errorf("invalid event pk %q", s)
	}
	return pk, nil
}

// printEvent writes one event line in listing format.
func printEvent(svc *schedule.Service, e model.Event) {
	marker := " "
	if svc.IsSelected(e.Pk) {
		marker = "*"
	}
	full := ""
	if e.Full {
		full = "  [full]"
	}
	fmt.Printf("%s #%-5d %s-%s  %-40s %s%s\n",
		marker, e.Pk, e.StartTime, e.EndTime, e.Title, e.Caption, full)
}

var rootCmd = &cobra.Command{
	Use:   "cudays",
	Short: "Orientation schedule cache",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Feed:      %s\n", cfg.Feed.Type)
		fmt.Printf("Store:     %s\n", cfg.Store.Type)
		fmt.Printf("Program:   %04d-%02d days %v\n", cfg.Program.Year, cfg.Program.Month, cfg.Program.Days)
		fmt.Printf("Day span:  %02d:00 through %02d:59\n", cfg.Program.StartHour, cfg.Program.EndHour)
		return nil
	},
}

// sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch and apply updates from the feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		svc := a.Service()
		first, err := svc.FirstRun()
		if err != nil {
			return err
		}

		res, err := svc.Sync(ctx)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if first {
			if err := svc.MarkLaunched(); err != nil {
				return err
			}
			fmt.Println("First sync complete.")
		}

		fmt.Printf("Synced to version %d: %d event(s) changed, %d deleted; %d category(ies) changed, %d deleted\n",
			res.Version, res.ChangedEvents, res.DeletedEvents, res.ChangedCategories, res.DeletedCategories)
		if len(res.ChangedSelected) > 0 {
			fmt.Printf("%d selected event(s) changed:\n", len(res.ChangedSelected))
			for _, e := range res.ChangedSelected {
				fmt.Printf("  #%d %s (%s %s)\n", e.Pk, e.Title, e.Date, e.StartTime)
			}
		}
		return nil
	},
}

// days command
var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List program days",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		svc := a.Service()
		for _, d := range svc.Days() {
			fmt.Printf("%s  %d event(s)\n", d, len(svc.EventsForDay(d)))
		}
		return nil
	},
}

// events command
var eventsCmd = &cobra.Command{
	Use:   "events [DAY]",
	Short: "List events, optionally for one day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		college, _ := cmd.Flags().GetInt("college")
		eventType, _ := cmd.Flags().GetInt("type")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		svc := a.Service()

		days := svc.Days()
		if len(args) == 1 {
			d, err := parseDay(args[0])
			if err != nil {
				return err
			}
			days = []model.Day{d}
		}

		matches := func(e model.Event) bool {
			if college > 0 && e.CollegeCategory != college {
				return false
			}
			if eventType > 0 && e.TypeCategory != eventType {
				return false
			}
			return true
		}

		shown := 0
		for _, d := range days {
			events := svc.EventsForDay(d)
			var kept []model.Event
			for _, e := range events {
				if matches(e) {
					kept = append(kept, e)
				}
			}
			if len(kept) == 0 {
				continue
			}
			fmt.Printf("%s\n", d)
			for _, e := range kept {
				printEvent(svc, e)
			}
			shown += len(kept)
		}
		if shown == 0 {
			fmt.Println("No events found. Run `cudays sync` to fetch the schedule.")
		}
		return nil
	},
}

// categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List colleges and event types",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		svc := a.Service()

		fmt.Println("Colleges:")
		for _, c := range svc.Colleges() {
			fmt.Printf("  #%-5d %s\n", c.Pk, c.Name)
		}
		fmt.Println("Types:")
		for _, c := range svc.Types() {
			fmt.Printf("  #%-5d %s\n", c.Pk, c.Name)
		}
		return nil
	},
}

// select command
var selectCmd = &cobra.Command{
	Use:   "select PK",
	Short: "Add an event to your agenda",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pk, err := parsePk(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().Select(pk); err != nil {
			return fmt.Errorf("selecting event %d: %w", pk, err)
		}
		e, _ := a.Service().Event(pk)
		fmt.Printf("Selected #%d %s (%s %s)\n", e.Pk, e.Title, e.Date, e.StartTime)
		return nil
	},
}

// deselect command
var deselectCmd = &cobra.Command{
	Use:   "deselect PK",
	Short: "Remove an event from your agenda",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pk, err := parsePk(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().Deselect(pk); err != nil {
			return fmt.Errorf("deselecting event %d: %w", pk, err)
		}
		fmt.Printf("Deselected #%d\n", pk)
		return nil
	},
}

// agenda command
var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Show your selected events",
	RunE: func(cmd *cobra.Command, args []string) error {
		icsPath, _ := cmd.Flags().GetString("ics")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		svc := a.Service()

		events := svc.Agenda()
		if len(events) == 0 {
			fmt.Println("No events selected.")
			return nil
		}

		if icsPath != "" {
			data, err := ics.Agenda(events, time.Now(), time.Local)
			if err != nil {
				return fmt.Errorf("building calendar: %w", err)
			}
			if err := os.WriteFile(icsPath, data, 0644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			fmt.Printf("Wrote %d event(s) to %s\n", len(events), icsPath)
			return nil
		}

		var last model.Day
		for _, e := range events {
			if e.Date != last {
				fmt.Printf("%s\n", e.Date)
				last = e.Date
			}
			printEvent(svc, e)
		}
		return nil
	},
}

// watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync periodically on the configured schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		spec := a.Config().Sync.Cron
		c := cron.New()
		_, err = c.AddFunc(spec, func() {
			res, err := a.Service().Sync(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "sync failed: %v\n", err)
				return
			}
			fmt.Printf("%s synced to version %d (%d changed, %d deleted)\n",
				time.Now().Format("2006-01-02 15:04:05"),
				res.Version, res.ChangedEvents, res.DeletedEvents)
		})
		if err != nil {
			return fmt.Errorf("invalid cron expression %q: %w", spec, err)
		}

		fmt.Printf("Watching feed on schedule %q. Ctrl-C to stop.\n", spec)
		c.Start()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		stopped := c.Stop()
		<-stopped.Done()
		return nil
	},
}

// feedserve command
var feedserveCmd = &cobra.Command{
	Use:   "feedserve FILE",
	Short: "Serve a feed document over HTTP for local testing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		srv := feedserver.NewServer(args[0], schedule.NewNopLogger())
		fmt.Printf("Serving %s on %s\n", args[0], addr)
		return http.ListenAndServe(addr, srv.Router())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().Int("college", 0, "Only events of this college category pk")
	eventsCmd.Flags().Int("type", 0, "Only events of this type category pk")
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(deselectCmd)
	rootCmd.AddCommand(agendaCmd)
	agendaCmd.Flags().String("ics", "", "Write the agenda as an iCalendar file to PATH")
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(feedserveCmd)
	feedserveCmd.Flags().String("addr", ":8090", "Listen address")
}
