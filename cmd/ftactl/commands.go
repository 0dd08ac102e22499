package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/domains/entity/etpart"
	"ftaorigin/internal/app/domains/modules/mdbom"
	"ftaorigin/internal/app/infra/persistence/database"
)

const timeLayout = "2006-01-02 15:04:05"

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update database tables",
		Action: withEnv(func(c *cli.Context, e *env) error {
			if err := database.Migrate(e.db); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "migration complete")
			return nil
		}),
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Reset all tables and load the EV battery pack sample data",
		Action: withEnv(func(c *cli.Context, e *env) error {
			if err := database.Migrate(e.db); err != nil {
				return err
			}
			if err := e.master.ResetAndSeed(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "sample data loaded")
			return nil
		}),
	}
}

func partsCommand() *cli.Command {
	return &cli.Command{
		Name:  "parts",
		Usage: "List material master",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Filter by material type (FERT, HALB, ROH)",
			},
		},
		Action: withEnv(func(c *cli.Context, e *env) error {
			parts, err := e.master.ListParts(c.Context, strings.ToUpper(c.String("type")))
			if err != nil {
				return err
			}
			printParts(c.App.Writer, parts)
			return nil
		}),
	}
}

func bomCommand() *cli.Command {
	return &cli.Command{
		Name:      "bom",
		Usage:     "Show the multi-level BOM of a material",
		ArgsUsage: "<part-id>",
		Action: withEnv(func(c *cli.Context, e *env) error {
			partID, err := requireArg(c)
			if err != nil {
				return err
			}
			root, err := e.origin.Explode(c.Context, partID)
			if err != nil {
				return err
			}
			printTree(c.App.Writer, root)
			return nil
		}),
	}
}

func determineCommand() *cli.Command {
	return &cli.Command{
		Name:      "determine",
		Usage:     "Run CTSH origin determination and record the result",
		ArgsUsage: "<part-id>",
		Action: withEnv(func(c *cli.Context, e *env) error {
			partID, err := requireArg(c)
			if err != nil {
				return err
			}
			result, err := e.origin.Determine(c.Context, partID)
			if err != nil {
				return err
			}
			printResult(c.App.Writer, result)
			return nil
		}),
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List determination history, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   50,
				Usage:   "Maximum number of records",
			},
			&cli.StringFlag{
				Name:    "part",
				Aliases: []string{"p"},
				Usage:   "Filter by material",
			},
		},
		Action: withEnv(func(c *cli.Context, e *env) error {
			records, err := e.origin.History(c.Context, c.String("part"), c.Int("limit"))
			if err != nil {
				return err
			}
			printHistory(c.App.Writer, records)
			return nil
		}),
	}
}

func requireArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one <part-id> argument")
	}
	return c.Args().First(), nil
}

func printParts(w io.Writer, parts []*etpart.Part) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MATNR\tTYPE\tHS CODE\tORIGIN\tUNIT PRICE\tDESCRIPTION")
	for _, p := range parts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Type, p.HSCode, p.Origin, p.UnitPrice.StringFixed(2), p.Description)
	}
	tw.Flush()
}

func printTree(w io.Writer, root *mdbom.Node) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPONENT\tTYPE\tHS CODE\tORIGIN\tQTY")
	var visit func(n *mdbom.Node)
	visit = func(n *mdbom.Node) {
		qty := "-"
		if n.Depth > 0 {
			qty = n.Quantity.String()
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\t%s\n",
			strings.Repeat("  ", n.Depth), n.PartID, n.Type, n.HSCode, n.Origin, qty)
		for _, child := range n.Children {
			visit(child)
		}
	}
	visit(root)
	tw.Flush()
}

func printResult(w io.Writer, r *etorigin.Result) {
	fmt.Fprintf(w, "Part:    %s (HS %s, heading %q)\n", r.PartID, r.HSCode, r.Heading)
	fmt.Fprintf(w, "Verdict: %s\n", r.Verdict)
	if r.Determination != nil {
		fmt.Fprintf(w, "Rule:    %s, dest %s, record #%d\n",
			r.Determination.RuleApplied, r.Determination.DestCountry, r.Determination.ID)
	}
	fmt.Fprintln(w)
	for _, entry := range r.Trail {
		fmt.Fprintln(w, entry.Message)
	}
}

func printHistory(w io.Writer, records []*etorigin.Determination) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMATNR\tDEST\tRESULT\tRULE\tDETERMINED AT")
	for _, d := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.PartID, d.DestCountry, d.Result, d.RuleApplied, d.DeterminedAt.Format(timeLayout))
	}
	tw.Flush()
}
