package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"menu-ordering/app"
	"menu-ordering/model"
	"menu-ordering/orders"
)

var ordersJSON bool

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Inspect and manage stored orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders, newest first",
	Args:  cobra.NoArgs,
	RunE:  runOrdersList,
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <order-id> <PENDING|CONFIRMED|CANCELLED>",
	Short: "Change an order's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runOrdersStatus,
}

var ordersDeleteCmd = &cobra.Command{
	Use:   "delete <order-id>",
	Short: "Delete one order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersDelete,
}

var ordersClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every order",
	Args:  cobra.NoArgs,
	RunE:  runOrdersClear,
}

func init() {
	ordersListCmd.Flags().BoolVar(&ordersJSON, "json", false, "print JSON")
	ordersCmd.AddCommand(ordersListCmd, ordersStatusCmd, ordersDeleteCmd, ordersClearCmd)
}

func runOrdersList(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	all, err := env.orders.GetAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	out := cmd.OutOrStdout()
	if ordersJSON {
		return printJSON(out, all)
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No orders yet.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSTATUS\tITEMS\tTOTAL")
	for _, o := range all {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			o.ID, o.CreatedAt.Local().Format("2006-01-02 15:04"), o.Status, itemSummary(o.Items), o.TotalPrice.StringFixed(2))
	}
	return tw.Flush()
}

func runOrdersStatus(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	status := model.OrderStatus(strings.ToUpper(args[1]))

	env, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	// status changes go through the store so cancellations restock
	st := env.newStore()
	app.Bootstrap(cmd.Context(), st)
	s := st.Dispatch(cmd.Context(), orders.UpdateOrderStatus{ID: id, Status: status})
	if err := orders.SelectOrdersError(s.Orders); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Order %d is now %s\n", id, status)
	return nil
}

func runOrdersDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	env, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	st := env.newStore()
	s := st.Dispatch(cmd.Context(), orders.DeleteOrder{ID: id})
	if err := orders.SelectOrdersError(s.Orders); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Order %d deleted\n", id)
	return nil
}

func runOrdersClear(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.orders.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All orders deleted")
	return nil
}

func itemSummary(items []model.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.ProductName))
	}
	return strings.Join(parts, ", ")
}
