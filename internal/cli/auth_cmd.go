package cli

import (
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Registro, inicio de sesión y activación de cuenta",
	}
	cmd.AddCommand(
		newSignUpCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newActivateCmd(app),
		newPasswordCmd(app),
	)
	return cmd
}

// passwordFlag returns value, or prompts for it on a terminal.
func (a *App) passwordFlag(value, title string) (string, error) {
	if value != "" {
		return value, nil
	}
	if !a.interactive() || a.Prompter == nil {
		return "", errNoPrompt
	}
	return a.Prompter.Password(title)
}

func newSignUpCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Crea una cuenta con el correo de tu invitación",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := app.passwordFlag(password, "Contraseña")
			if err != nil {
				return err
			}
			session, err := app.Auth.SignUp(cmd.Context(), email, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Cuenta creada para %s.\n", session.Email)
			fmt.Fprintln(out(cmd), formatter.Dim("Completa tu perfil con `datenova auth activate`."))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Correo electrónico")
	cmd.Flags().StringVar(&password, "password", "", "Contraseña")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := app.passwordFlag(password, "Contraseña")
			if err != nil {
				return err
			}
			session, err := app.Auth.SignInWithPassword(cmd.Context(), email, pw)
			if err != nil {
				return err
			}
			user, needsActivation, err := app.Session.Current(cmd.Context())
			if err != nil {
				return err
			}
			if needsActivation {
				fmt.Fprintf(out(cmd), "Sesión iniciada como %s.\n", session.Email)
				fmt.Fprintln(out(cmd), formatter.Dim("Tu cuenta aún no está activada: ejecuta `datenova auth activate`."))
				return nil
			}
			fmt.Fprintf(out(cmd), "Bienvenido, %s (%s).\n", user.Name, user.Role.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Correo electrónico")
	cmd.Flags().StringVar(&password, "password", "", "Contraseña")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Sesión cerrada.")
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el usuario de la sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s <%s>\n", formatter.Bold(user.Name), user.Email)
			fmt.Fprintf(out(cmd), "Rol: %s\n", user.Role.Label())
			if user.CompanyName != "" {
				fmt.Fprintf(out(cmd), "Empresa: %s\n", user.CompanyName)
			}
			return nil
		},
	}
}

func newActivateCmd(app *App) *cobra.Command {
	var in ActivationInput
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Activa tu cuenta a partir de una invitación",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Name == "" || in.Password == "" {
				if !app.interactive() || app.Prompter == nil {
					return errNoPrompt
				}
				if err := app.Prompter.Activation(&in); err != nil {
					return err
				}
			}
			user, err := app.Invitations.Activate(cmd.Context(), in.Name, in.Password, in.Confirm)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Cuenta activada: %s (%s).\n", user.Name, user.Role.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Nombre completo")
	cmd.Flags().StringVar(&in.Password, "password", "", "Nueva contraseña")
	cmd.Flags().StringVar(&in.Confirm, "confirm", "", "Confirmación de la contraseña")
	return cmd
}

func newPasswordCmd(app *App) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Cambia la contraseña de la sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := app.passwordFlag(password, "Nueva contraseña")
			if err != nil {
				return err
			}
			if err := app.Auth.UpdatePassword(cmd.Context(), pw); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Contraseña actualizada.")
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Nueva contraseña")
	return cmd
}
