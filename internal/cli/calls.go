package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/comparedemo/internal/backend"
	"github.com/wesleyorama2/comparedemo/internal/output"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User service calls",
}

var userCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCall(cmd, func(ctx context.Context, svc *backend.Service) (interface{}, string, error) {
			res, err := svc.CreateUser(ctx, args[0])
			if err != nil {
				return nil, "", err
			}
			return res.Body, res.UserID, nil
		})
	},
}

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Product service calls",
}

var productGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Fetch a product by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCall(cmd, func(ctx context.Context, svc *backend.Service) (interface{}, string, error) {
			data, err := svc.GetProduct(ctx, args[0])
			return data, "", err
		})
	},
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Order service calls",
}

var orderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a quantity-1 order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		productID, _ := cmd.Flags().GetString("product")
		return runCall(cmd, func(ctx context.Context, svc *backend.Service) (interface{}, string, error) {
			data, err := svc.CreateOrder(ctx, userID, productID)
			return data, "", err
		})
	},
}

type callFunc func(ctx context.Context, svc *backend.Service) (data interface{}, createdID string, err error)

// runCall performs one manual call and prints its body, or the formatted
// error to stderr.
func runCall(cmd *cobra.Command, call callFunc) error {
	arch, _ := cmd.Flags().GetString("arch")
	format, _ := cmd.Flags().GetString("output")

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := a.formatter(format)
	if err != nil {
		return err
	}
	svc, err := a.service(arch)
	if err != nil {
		return err
	}

	a.logger.Debug("calling backend", "command", cmd.CommandPath(), "architecture", svc.Architecture().Name)
	data, createdID, err := call(cmd.Context(), svc)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), f.FormatError(err))
		return &reportedError{err: err}
	}

	fmt.Fprintln(cmd.OutOrStdout(), f.FormatResult(data))
	if createdID != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), f.Highlight(fmt.Sprintf("(Created ID: %s)", createdID)))
	}
	return nil
}

func addCallFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("arch", "a", "", "Target architecture (monolith or microservices)")
	cmd.Flags().StringP("output", "o", string(output.FormatJSON), "Output format (json or yaml)")
}

func init() {
	orderCreateCmd.Flags().StringP("user", "u", "", "User id")
	orderCreateCmd.Flags().StringP("product", "p", "", "Product id")

	for _, c := range []*cobra.Command{userCreateCmd, productGetCmd, orderCreateCmd} {
		addCallFlags(c)
	}

	userCmd.AddCommand(userCreateCmd)
	productCmd.AddCommand(productGetCmd)
	orderCmd.AddCommand(orderCreateCmd)
}
