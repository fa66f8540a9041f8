package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"menu-ordering/model"
	"menu-ordering/service"
)

var reviewFlags struct {
	productID int64
	username  string
	rating    int
	comment   string
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List and submit product reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reviews, newest first",
	Args:  cobra.NoArgs,
	RunE:  runReviewsList,
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit a review",
	Args:  cobra.NoArgs,
	RunE:  runReviewsAdd,
}

func init() {
	f := reviewsAddCmd.Flags()
	f.Int64Var(&reviewFlags.productID, "product", 0, "product ID (required)")
	f.StringVar(&reviewFlags.username, "user", "", "reviewer name (required)")
	f.IntVar(&reviewFlags.rating, "rating", 5, "rating from 1 to 5")
	f.StringVar(&reviewFlags.comment, "comment", "", "review text, 10 to 500 characters (required)")

	_ = reviewsAddCmd.MarkFlagRequired("product")
	_ = reviewsAddCmd.MarkFlagRequired("user")
	_ = reviewsAddCmd.MarkFlagRequired("comment")

	reviewsCmd.AddCommand(reviewsListCmd, reviewsAddCmd)
}

func runReviewsList(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := cmd.Context()
	reviews, err := env.reviews.List(ctx)
	if err != nil {
		return fmt.Errorf("load reviews: %w", err)
	}
	names := env.reviews.ProductNames(ctx)
	out := cmd.OutOrStdout()
	for _, rv := range reviews {
		name := service.NameOf(names, rv.ProductID)
		fmt.Fprintf(out, "%s  %s  by %s on %s\n", strings.Join(model.Stars(rv.Rating), ""), name, rv.Username, rv.Date.Format("Jan 2, 2006"))
		fmt.Fprintf(out, "    %s\n", rv.Comment)
	}
	return nil
}

func runReviewsAdd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	rv, err := env.reviews.Submit(cmd.Context(), service.ReviewInput{
		ProductID: reviewFlags.productID,
		Username:  reviewFlags.username,
		Rating:    reviewFlags.rating,
		Comment:   reviewFlags.comment,
	})
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f.Field, f.Message)
		}
		return errors.New("review rejected")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Review %d saved\n", rv.ID)
	return nil
}
