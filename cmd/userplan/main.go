package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
)

func main() {
	var (
		idFlag      string
		emailFlag   string
		planFlag    string
		creditsFlag int
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.StringVar(&planFlag, "plan", "pro", "plan to assign (free, pro, enterprise)")
	flag.IntVar(&creditsFlag, "credits", -1, "credit balance to set (negative keeps current value)")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	planName := strings.TrimSpace(strings.ToLower(planFlag))

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	plan, ok := domain.LookupPlan(planName)
	if !ok {
		exitWithError(fmt.Errorf("unsupported plan %q", planName))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "userplan").Logger()
	runner := infra.NewSQLRunner(pool, logger)
	profiles := repo.NewProfileRepository(runner)

	if userID == "" {
		profile, err := profiles.GetProfileByEmail(ctx, email)
		if err != nil {
			exitWithError(fmt.Errorf("failed to load user: %w", err))
		}
		userID = profile.ID
	}

	if err := profiles.SetPlan(ctx, userID, plan, creditsFlag); err != nil {
		exitWithError(fmt.Errorf("failed to update user plan: %w", err))
	}

	profile, err := profiles.GetProfile(ctx, userID)
	if err != nil {
		exitWithError(fmt.Errorf("failed to reload user: %w", err))
	}

	fmt.Printf("User %s (%s) updated to plan %s\n", profile.ID, profile.Email, profile.Plan)
	fmt.Printf("credits_remaining=%d\n", profile.CreditsRemaining)
	fmt.Printf("credits_used=%d\n", profile.CreditsUsed)
	fmt.Printf("credits_reset_at=%s\n", profile.CreditsResetAt.Format(time.RFC3339))
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
