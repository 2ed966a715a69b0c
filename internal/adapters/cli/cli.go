package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"fiduciary-books/internal/app"
)

// MigrateFunc applies pending schema migrations.
type MigrateFunc func(ctx context.Context) error

const (
	formatJSON  = "json"
	formatTable = "table"
)

// BuildCLI creates the command tree. Results are written to out as indented
// JSON, or as fixed-width tables with --format table.
func BuildCLI(svc app.ApplicationService, migrate MigrateFunc, out io.Writer) *cli.Command {
	yearFlag := &cli.StringFlag{
		Name:    "year",
		Aliases: []string{"y"},
		Usage:   "fiscal year; defaults to the current year",
	}
	listFlags := []cli.Flag{
		yearFlag,
		&cli.StringFlag{Name: "q", Usage: "free-text filter"},
		&cli.StringFlag{Name: "status", Value: "all", Usage: "OPEN, PAID, CANCELLED or all"},
		&cli.StringFlag{Name: "sort", Value: "date_desc", Usage: "date_desc or date_asc"},
	}
	listQuery := func(c *cli.Command) app.ListQuery {
		return app.ListQuery{Year: c.String("year"), Q: c.String("q"), Status: c.String("status"), Sort: c.String("sort")}
	}

	migrateCmd := &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations",
		Action: func(ctx context.Context, c *cli.Command) error {
			if migrate == nil {
				return fmt.Errorf("migrations need the postgres store")
			}
			if err := migrate(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Migrations applied.")
			return nil
		},
	}

	dashboardCmd := &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"dash"},
		Usage:   "Show the yearly summary",
		Flags:   []cli.Flag{yearFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			res, err := svc.GetDashboard(ctx, c.String("year"))
			if err != nil {
				return err
			}
			return emit(c, out, res.Dashboard, func(w io.Writer) { printDashboard(w, res) })
		},
	}

	billsCmd := &cli.Command{
		Name:  "bills",
		Usage: "List supplier bills",
		Flags: listFlags,
		Action: func(ctx context.Context, c *cli.Command) error {
			res, err := svc.ListBills(ctx, listQuery(c))
			if err != nil {
				return err
			}
			return emit(c, out, res, func(w io.Writer) { printBills(w, res) })
		},
	}

	invoicesCmd := &cli.Command{
		Name:    "invoices",
		Aliases: []string{"inv"},
		Usage:   "List client invoices",
		Flags:   listFlags,
		Action: func(ctx context.Context, c *cli.Command) error {
			res, err := svc.ListInvoices(ctx, listQuery(c))
			if err != nil {
				return err
			}
			return emit(c, out, res, func(w io.Writer) { printInvoices(w, res) })
		},
	}

	expensesCmd := &cli.Command{
		Name:  "expenses",
		Usage: "List expenses of a year",
		Flags: []cli.Flag{yearFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			res, err := svc.ListExpenses(ctx, c.String("year"))
			if err != nil {
				return err
			}
			return emit(c, out, res, func(w io.Writer) { printExpenses(w, res) })
		},
	}

	clientsCmd := &cli.Command{
		Name:  "clients",
		Usage: "List clients",
		Action: func(ctx context.Context, c *cli.Command) error {
			clients, err := svc.ListClients(ctx)
			if err != nil {
				return err
			}
			names := make([]string, len(clients))
			for i, cl := range clients {
				names[i] = cl.Name
			}
			return emit(c, out, clients, func(w io.Writer) { printNames(w, "CLIENTS", names) })
		},
	}

	clientCreateCmd := &cli.Command{
		Name:  "client-create",
		Usage: "Add a client",
		Flags: []cli.Flag{&cli.StringFlag{Name: "name", Usage: "client name", Required: true}},
		Action: func(ctx context.Context, c *cli.Command) error {
			res, err := svc.CreateClient(ctx, c.String("name"))
			if err != nil {
				return err
			}
			return emit(c, out, res, func(w io.Writer) { printMutation(w, "client", res) })
		},
	}

	suppliersCmd := &cli.Command{
		Name:  "suppliers",
		Usage: "List suppliers",
		Flags: []cli.Flag{&cli.StringFlag{Name: "q", Usage: "name contains"}},
		Action: func(ctx context.Context, c *cli.Command) error {
			suppliers, err := svc.ListSuppliers(ctx, c.String("q"))
			if err != nil {
				return err
			}
			names := make([]string, len(suppliers))
			for i, s := range suppliers {
				names[i] = s.Name
			}
			return emit(c, out, suppliers, func(w io.Writer) { printNames(w, "SUPPLIERS", names) })
		},
	}

	supplierCreateCmd := &cli.Command{
		Name:  "supplier-create",
		Usage: "Add a supplier",
		Flags: []cli.Flag{&cli.StringFlag{Name: "name", Usage: "supplier name", Required: true}},
		Action: func(ctx context.Context, c *cli.Command) error {
			res, err := svc.CreateSupplier(ctx, c.String("name"))
			if err != nil {
				return err
			}
			return emit(c, out, res, func(w io.Writer) { printMutation(w, "supplier", res) })
		},
	}

	employeeCreateCmd := &cli.Command{
		Name:  "employee-create",
		Usage: "Add an employee",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "employee name", Required: true},
			&cli.StringFlag{Name: "type", Value: "EMPLOYE", Usage: "EMPLOYE or CADRE"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			emp, err := svc.CreateEmployee(ctx, app.CreateEmployeeRequest{Name: c.String("name"), Type: c.String("type")})
			if err != nil {
				return err
			}
			return emit(c, out, emp, func(w io.Writer) {
				fmt.Fprintf(w, "Employee %s (%s) created: %s\n", emp.Name, emp.Type, emp.ID)
			})
		},
	}

	salariesCmd := &cli.Command{
		Name:  "salaries",
		Usage: "List salaries, most recent month first",
		Action: func(ctx context.Context, c *cli.Command) error {
			salaries, err := svc.ListSalaries(ctx)
			if err != nil {
				return err
			}
			return emit(c, out, salaries, func(w io.Writer) { printSalaries(w, salaries) })
		},
	}

	salaryUpsertCmd := &cli.Command{
		Name:  "salary-upsert",
		Usage: "Record or replace the salary of an employee for one month",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "employee", Usage: "employee id", Required: true},
			&cli.StringFlag{Name: "year", Required: true},
			&cli.StringFlag{Name: "month", Required: true},
			&cli.StringFlag{Name: "gross", Usage: "gross salary in cents"},
			&cli.StringFlag{Name: "charges", Usage: "employer charges in cents"},
			&cli.StringFlag{Name: "net", Usage: "net salary in cents"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			sal, err := svc.UpsertSalary(ctx, app.UpsertSalaryRequest{
				EmployeeID:   c.String("employee"),
				Year:         atoiOrZero(c.String("year")),
				Month:        atoiOrZero(c.String("month")),
				GrossCents:   centsFlag(c.String("gross")),
				ChargesCents: centsFlag(c.String("charges")),
				NetCents:     centsFlag(c.String("net")),
			})
			if err != nil {
				return err
			}
			return emit(c, out, sal, func(w io.Writer) { printSalaries(w, salaryRow(sal)) })
		},
	}

	rootCmd := &cli.Command{
		Name:   "books",
		Usage:  "Bookkeeping for a small fiduciary office",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   formatJSON,
				Usage:   "output format: json or table",
			},
		},
		Commands: []*cli.Command{
			migrateCmd, dashboardCmd, billsCmd, invoicesCmd, expensesCmd,
			clientsCmd, clientCreateCmd, suppliersCmd, supplierCreateCmd,
			employeeCreateCmd, salariesCmd, salaryUpsertCmd,
		},
	}
	return rootCmd
}

// emit writes v as indented JSON, or through table when --format table is set.
func emit(c *cli.Command, out io.Writer, v any, table func(io.Writer)) error {
	switch strings.ToLower(c.String("format")) {
	case formatTable:
		table(out)
		return nil
	case formatJSON, "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", c.String("format"))
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// centsFlag reads an optional amount in cents. Unreadable input becomes -1 so
// the salary validation rejects it.
func centsFlag(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1
	}
	return n
}
