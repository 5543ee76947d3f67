package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vbonduro/shoplist/internal/category"
	"github.com/vbonduro/shoplist/internal/config"
	"github.com/vbonduro/shoplist/internal/display"
	"github.com/vbonduro/shoplist/internal/service"
	"github.com/vbonduro/shoplist/internal/web"
)

// reportedError marks an error the command already printed.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// cli carries the flags shared by every subcommand.
type cli struct {
	cfg     *config.Config
	user    string
	json    bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	c := &cli{cfg: config.Load()}

	root := &cobra.Command{
		Use:   "shoplist",
		Short: "A shopping list that understands what you meant",
		Long: "Keep a per-user shopping list from the terminal or over HTTP.\n" +
			"Names are normalised, removals tolerate typos, and free-text\n" +
			"commands work in English and any language with a phrasebook.",
		Example: `  shoplist add tomatoes -q 3
  shoplist remove tomatoe
  shoplist say "add 2 bananas"
  shoplist say --lang hi "दो सेब जोड़ो"
  shoplist search dairy --max-price 5
  shoplist serve`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.user, "user", "u", c.cfg.User, "List owner (defaults to SHOPLIST_USER)")
	pf.BoolVar(&c.json, "json", false, "Output as JSON")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "Log at LOG_LEVEL instead of errors only")

	root.AddCommand(
		c.serveCmd(),
		c.addCmd(),
		c.removeCmd(),
		c.listCmd(),
		c.suggestCmd(),
		c.searchCmd(),
		c.historyCmd(),
		c.sayCmd(),
		c.translateCmd(),
		c.importCmd(),
		c.exportCmd(),
	)
	return root
}

// open builds the app. One-shot commands stay quiet unless --verbose.
func (c *cli) open(cmd *cobra.Command) (*app, error) {
	level := c.cfg.LogLevel
	if cmd.Name() != "serve" && !c.verbose {
		level = "error"
	}
	return openApp(c.cfg, level)
}

// output writes v as JSON or hands off to the terminal renderer.
func (c *cli) output(w io.Writer, v any, pretty func()) error {
	if c.json {
		return display.PrintJSON(w, v)
	}
	pretty()
	return nil
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			server := web.NewServer(a.list, a.commands, a.importer, web.Options{
				AllowOrigins:   c.cfg.AllowOrigins,
				MaxUploadBytes: c.cfg.MaxUploadBytes(),
			}, a.logger)
			a.logger.Info("listening", "addr", c.cfg.ListenAddr)
			return server.ListenAndServe(c.cfg.ListenAddr)
		},
	}
}

func (c *cli) addCmd() *cobra.Command {
	var (
		quantity int
		cat      string
		brand    string
		price    float64
	)
	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add an item or top up an existing one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			in := service.AddInput{
				Owner:    c.user,
				Name:     strings.Join(args, " "),
				Quantity: quantity,
				Brand:    brand,
			}
			if cat != "" {
				in.Category = category.Parse(cat)
			}
			if cmd.Flags().Changed("price") {
				in.Price = &price
			}

			item, err := a.list.Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.output(cmd.OutOrStdout(), item, func() { display.PrintAdded(cmd.OutOrStdout(), item) })
		},
	}
	f := cmd.Flags()
	f.IntVarP(&quantity, "quantity", "q", 1, "How many to add")
	f.StringVarP(&cat, "category", "c", "", "Category (inferred when omitted)")
	f.StringVarP(&brand, "brand", "b", "", "Brand")
	f.Float64VarP(&price, "price", "p", 0, "Unit price")
	return cmd
}

func (c *cli) removeCmd() *cobra.Command {
	var quantity int
	cmd := &cobra.Command{
		Use:   "remove NAME...",
		Short: "Remove some or all of an item; typos are tolerated",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.list.Remove(cmd.Context(), service.RemoveInput{
				Owner:    c.user,
				Name:     strings.Join(args, " "),
				Quantity: quantity,
			})
			var nf *service.NotFoundError
			if errors.As(err, &nf) && !c.json {
				display.PrintNotFound(cmd.ErrOrStderr(), nf)
				return &reportedError{err: err}
			}
			if err != nil {
				return err
			}
			return c.output(cmd.OutOrStdout(), res, func() { display.PrintRemoved(cmd.OutOrStdout(), res) })
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "How many to remove")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			items, err := a.list.List(cmd.Context(), c.user)
			if err != nil {
				return err
			}
			return c.output(cmd.OutOrStdout(), items, func() {
				display.PrintItems(cmd.OutOrStdout(), "Shopping list", items)
			})
		},
	}
}

func (c *cli) suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest what to buy from your history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			bundle, err := a.list.Suggest(cmd.Context(), c.user)
			if err != nil {
				return err
			}
			return c.output(cmd.OutOrStdout(), bundle, func() { display.PrintSuggestions(cmd.OutOrStdout(), bundle) })
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	var (
		brand    string
		minPrice float64
		maxPrice float64
	)
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search the list by name, category or synonym",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			in := service.SearchInput{Owner: c.user, Query: strings.Join(args, " "), Brand: brand}
			if cmd.Flags().Changed("min-price") {
				in.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				in.MaxPrice = &maxPrice
			}

			items, err := a.list.Search(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.output(cmd.OutOrStdout(), items, func() {
				display.PrintItems(cmd.OutOrStdout(), fmt.Sprintf("Results for %q", in.Query), items)
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&brand, "brand", "b", "", "Only this brand")
	f.Float64Var(&minPrice, "min-price", 0, "Lowest price")
	f.Float64Var(&maxPrice, "max-price", 0, "Highest price")
	return cmd
}

func (c *cli) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show add and remove events, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			events, err := a.list.History(cmd.Context(), c.user)
			if err != nil {
				return err
			}
			return c.output(cmd.OutOrStdout(), events, func() {
				w := cmd.OutOrStdout()
				for _, ev := range events {
					fmt.Fprintf(w, "%s  %-6s %s\n", ev.Timestamp.Format("2006-01-02 15:04"), ev.Action, ev.ItemName)
				}
			})
		},
	}
}

func (c *cli) sayCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "say TEXT...",
		Short: "Run a free-text command such as \"add 2 apples\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.commands.Execute(cmd.Context(), c.user, strings.Join(args, " "), lang)
			var nf *service.NotFoundError
			if errors.As(err, &nf) && !c.json {
				display.PrintNotFound(cmd.ErrOrStderr(), nf)
				return &reportedError{err: err}
			}
			if err != nil {
				return err
			}
			return c.output(cmd.OutOrStdout(), res, func() { display.PrintCommand(cmd.OutOrStdout(), res) })
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "Language of TEXT, e.g. hi or hi-IN")
	return cmd
}

func (c *cli) translateCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "translate TEXT...",
		Short: "Translate a phrase to English with the configured backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			translated, err := a.commands.Translate(cmd.Context(), strings.Join(args, " "), source)
			if err != nil {
				return err
			}
			return c.output(cmd.OutOrStdout(), map[string]string{"translated": translated}, func() {
				fmt.Fprintln(cmd.OutOrStdout(), translated)
			})
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "auto", "Source language")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add every row of a CSV, XLSX or XLS file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			sum, err := a.importer.Import(cmd.Context(), c.user, f, args[0])
			if err != nil {
				return err
			}
			return c.output(cmd.OutOrStdout(), sum, func() { display.PrintImport(cmd.OutOrStdout(), sum) })
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the list to an XLSX file, or - for stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if args[0] == "-" {
				return a.importer.Export(cmd.Context(), c.user, cmd.OutOrStdout())
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			if err := a.importer.Export(cmd.Context(), c.user, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", args[0])
			return nil
		},
	}
}
