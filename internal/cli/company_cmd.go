package cli

import (
	"context"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/spf13/cobra"
)

func (a *App) resolveCompanyID(ctx context.Context, input string) (string, error) {
	companies, err := a.Companies.List(ctx)
	if err != nil {
		return "", err
	}
	return resolveID("empresa", input, companies,
		func(c *domain.Company) string { return c.ID },
		func(c *domain.Company) string { return c.Name })
}

// optionalString returns nil for an empty value so the column stays NULL.
func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func newCompanyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "company",
		Aliases: []string{"empresa"},
		Short:   "Gestiona empresas cliente",
	}
	cmd.AddCommand(
		newCompanyAddCmd(app),
		newCompanyListCmd(app),
		newCompanyEditCmd(app),
		newCompanyRemoveCmd(app),
	)
	return cmd
}

func newCompanyAddCmd(app *App) *cobra.Command {
	var name, email, phone, address string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea una empresa",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			c := &domain.Company{
				Name:    name,
				Email:   optionalString(email),
				Phone:   optionalString(phone),
				Address: optionalString(address),
			}
			if err := app.Companies.Create(cmd.Context(), actor, c); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Empresa %s creada [%s]\n", c.Name, formatter.TruncID(c.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Nombre de la empresa")
	cmd.Flags().StringVar(&email, "email", "", "Correo de contacto")
	cmd.Flags().StringVar(&phone, "phone", "", "Teléfono")
	cmd.Flags().StringVar(&address, "address", "", "Dirección")
	return cmd
}

func newCompanyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista las empresas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.currentUser(cmd.Context()); err != nil {
				return err
			}
			companies, err := app.Companies.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatCompanyList(companies))
			return nil
		},
	}
}

func newCompanyEditCmd(app *App) *cobra.Command {
	var name, email, phone, address string
	cmd := &cobra.Command{
		Use:   "edit <empresa>",
		Short: "Modifica una empresa",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveCompanyID(ctx, args[0])
			if err != nil {
				return err
			}
			c, err := app.Companies.Get(ctx, id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				c.Name = name
			}
			if flags.Changed("email") {
				c.Email = optionalString(email)
			}
			if flags.Changed("phone") {
				c.Phone = optionalString(phone)
			}
			if flags.Changed("address") {
				c.Address = optionalString(address)
			}
			if err := app.Companies.Update(ctx, actor, c); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Empresa %s actualizada\n", c.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Nombre de la empresa")
	cmd.Flags().StringVar(&email, "email", "", "Correo de contacto")
	cmd.Flags().StringVar(&phone, "phone", "", "Teléfono")
	cmd.Flags().StringVar(&address, "address", "", "Dirección")
	return cmd
}

func newCompanyRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <empresa>",
		Short: "Elimina una empresa",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveCompanyID(ctx, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirm("¿Eliminar la empresa?", yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Companies.Delete(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Empresa eliminada")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "No pedir confirmación")
	return cmd
}
