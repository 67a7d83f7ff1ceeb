package cli

import (
	"context"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/spf13/cobra"
)

func (a *App) resolveUserID(ctx context.Context, input string) (string, error) {
	ids, err := a.resolveUserIDs(ctx, []string{input})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"usuario"},
		Short:   "Gestiona los perfiles del equipo",
	}
	cmd.AddCommand(newUserListCmd(app), newUserEditCmd(app), newUserRemoveCmd(app))
	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	var assignable bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista los usuarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			list := app.Users.List
			if assignable {
				list = app.Users.ListAssignable
			}
			users, err := list(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatUserList(users))
			return nil
		},
	}
	cmd.Flags().BoolVar(&assignable, "assignable", false, "Solo usuarios que pueden recibir tareas")
	return cmd
}

func newUserEditCmd(app *App) *cobra.Command {
	var name, role, company string
	var costRate, billableRate float64
	cmd := &cobra.Command{
		Use:   "edit <usuario>",
		Short: "Modifica nombre, rol, empresa o tarifas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveUserID(ctx, args[0])
			if err != nil {
				return err
			}
			u, err := app.Users.Get(ctx, id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				u.Name = name
			}
			if flags.Changed("role") {
				u.Role = domain.Role(role)
			}
			if flags.Changed("company") {
				u.CompanyID = nil
				if company != "" {
					cid, err := app.resolveCompanyID(ctx, company)
					if err != nil {
						return err
					}
					u.CompanyID = &cid
				}
			}
			if flags.Changed("cost-rate") {
				u.CostRate = costRate
			}
			if flags.Changed("billable-rate") {
				u.BillableRate = billableRate
			}
			if err := app.Users.Update(ctx, actor, u); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Usuario %s actualizado (%s)\n", u.Name, u.Role.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Nombre")
	roleFlag(cmd.Flags(), &role, "role", "", "Rol")
	cmd.Flags().StringVar(&company, "company", "", "Empresa (vacío para quitarla)")
	cmd.Flags().Float64Var(&costRate, "cost-rate", 0, "Costo interno por hora")
	cmd.Flags().Float64Var(&billableRate, "billable-rate", 0, "Tarifa facturable por hora")
	return cmd
}

func newUserRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <usuario>",
		Short: "Elimina un perfil",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveUserID(ctx, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirm("¿Eliminar el usuario?", yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Users.Delete(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Usuario eliminado")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "No pedir confirmación")
	return cmd
}

func (a *App) resolveInvitationID(ctx context.Context, input string) (string, error) {
	invs, err := a.Invitations.ListOpen(ctx)
	if err != nil {
		return "", err
	}
	return resolveID("invitación", input, invs,
		func(i *domain.Invitation) string { return i.ID },
		func(i *domain.Invitation) string { return i.Email })
}

func newInviteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invite",
		Aliases: []string{"invitacion"},
		Short:   "Invita personas al equipo",
	}
	cmd.AddCommand(
		newInviteAddCmd(app),
		newInviteListCmd(app),
		newInviteSendCmd(app),
		newInviteCancelCmd(app),
		newInviteRemoveCmd(app),
	)
	return cmd
}

func newInviteAddCmd(app *App) *cobra.Command {
	var email, role, company string
	var costRate, billableRate float64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea una invitación pendiente",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			inv := &domain.Invitation{
				Email:        email,
				Role:         domain.Role(role),
				CostRate:     costRate,
				BillableRate: billableRate,
			}
			if company != "" {
				cid, err := app.resolveCompanyID(ctx, company)
				if err != nil {
					return err
				}
				inv.CompanyID = &cid
			}
			if err := app.Invitations.Invite(ctx, actor, inv); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Invitación para %s creada [%s]\n", inv.Email, formatter.TruncID(inv.ID))
			fmt.Fprintln(out(cmd), formatter.Dim("Envíala con `datenova invite send "+formatter.TruncID(inv.ID)+"`."))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Correo del invitado")
	roleFlag(cmd.Flags(), &role, "role", string(domain.RoleDeveloper), "Rol del invitado")
	cmd.Flags().StringVar(&company, "company", "", "Empresa del invitado")
	cmd.Flags().Float64Var(&costRate, "cost-rate", 0, "Costo interno por hora")
	cmd.Flags().Float64Var(&billableRate, "billable-rate", 0, "Tarifa facturable por hora")
	return cmd
}

func newInviteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista las invitaciones abiertas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.currentUser(cmd.Context()); err != nil {
				return err
			}
			invs, err := app.Invitations.ListOpen(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatInvitationList(invs, app.now()))
			return nil
		},
	}
}

func newInviteSendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "send <invitación>",
		Short: "Marca la invitación como enviada e imprime el enlace mailto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveInvitationID(ctx, args[0])
			if err != nil {
				return err
			}
			link, err := app.Invitations.MarkSent(ctx, actor, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), link)
			return nil
		},
	}
}

func newInviteCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <invitación>",
		Short: "Cancela una invitación abierta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveInvitationID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Invitations.Cancel(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Invitación cancelada")
			return nil
		},
	}
}

func newInviteRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <invitación>",
		Short: "Elimina una invitación abierta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveInvitationID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Invitations.Delete(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Invitación eliminada")
			return nil
		},
	}
}
