package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/innov8-labs/innov8/internal/auth"
	"github.com/innov8-labs/innov8/internal/model"
	"github.com/innov8-labs/innov8/internal/storage"
)

// demoPassword is shared by every seeded account.
const demoPassword = "demo1234"

type demoIdea struct {
	owner       string // email of the seeded author
	title       string
	description string
	category    string
	tags        []string
	status      model.IdeaStatus
}

// seedDemoData loads a small set of demo accounts and ideas for local
// evaluation. Engagement (likes, ratings, comments) goes through the same
// store methods the API uses, so the denormalized counters are consistent
// by construction. Idempotent: a database that already has the demo account
// is left untouched.
func seedDemoData(ctx context.Context, store *storage.Store, logger *slog.Logger) error {
	if _, err := store.GetUserByEmail(ctx, "demo@innov8.com"); err == nil {
		logger.Info("seed: demo data already present, skipping")
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	accounts := []model.User{
		{Email: "demo@innov8.com", Name: "Demo User"},
		{Email: "alice@innov8.com", Name: "Alice Johnson"},
		{Email: "bob@innov8.com", Name: "Bob Smith"},
	}
	users := make(map[string]model.User, len(accounts))
	for _, u := range accounts {
		u.PasswordHash = hash
		created, err := store.CreateUser(ctx, u)
		if err != nil {
			return fmt.Errorf("create %s: %w", u.Email, err)
		}
		users[u.Email] = created
	}

	ideas := []demoIdea{
		{
			owner:       "demo@innov8.com",
			title:       "AI-Powered Meal Planner",
			description: "An app that plans weekly meals from what is already in your fridge, using a photo of the shelves and your dietary preferences. Generates a shopping list for the missing items only.",
			category:    "ai-ml",
			tags:        []string{"food", "ai", "mobile"},
			status:      model.StatusFeedback,
		},
		{
			owner:       "demo@innov8.com",
			title:       "Neighborhood Tool Library",
			description: "A lending platform for power tools and garden equipment within a few blocks. Deposit-backed checkout, availability calendar, and a reputation score for careful borrowers.",
			category:    "service",
			tags:        []string{"sharing-economy", "community"},
			status:      model.StatusDraft,
		},
		{
			owner:       "alice@innov8.com",
			title:       "Remote Team Mood Tracker",
			description: "A Slack-integrated pulse survey that takes one tap per day and charts team morale over time. Anonymized by default with alerts when a team trends down for a week.",
			category:    "saas",
			tags:        []string{"hr", "remote-work", "analytics"},
			status:      model.StatusFeedback,
		},
		{
			owner:       "alice@innov8.com",
			title:       "Micro-Investing for Teens",
			description: "A custodial investing app where teenagers invest spare change with parental guardrails. Built-in lessons unlock higher limits as they are completed.",
			category:    "fintech",
			tags:        []string{"investing", "education"},
			status:      model.StatusDraft,
		},
		{
			owner:       "bob@innov8.com",
			title:       "Smart Plant Watering Hub",
			description: "A hub that drives up to eight drip lines from soil moisture sensors. Phone app shows per-plant history and learns each plant's cycle instead of watering on a timer.",
			category:    "hardware",
			tags:        []string{"iot", "gardening"},
			status:      model.StatusPrototype,
		},
		{
			owner:       "bob@innov8.com",
			title:       "Local Language Exchange Meetups",
			description: "Matches pairs of people learning each other's native language and books a table at a cafe halfway between them. Conversation prompts tuned to both skill levels.",
			category:    "mobile-app",
			tags:        []string{"language", "social"},
			status:      model.StatusFeedback,
		},
	}

	created := make([]model.Idea, 0, len(ideas))
	for _, d := range ideas {
		idea, err := store.CreateIdea(ctx, model.Idea{
			UserID:      users[d.owner].ID,
			Title:       d.title,
			Description: d.description,
			Category:    d.category,
			Tags:        d.tags,
			Status:      d.status,
			IsPublic:    true,
		})
		if err != nil {
			return fmt.Errorf("create idea %q: %w", d.title, err)
		}
		created = append(created, idea)
	}

	demo := users["demo@innov8.com"]
	alice := users["alice@innov8.com"]
	bob := users["bob@innov8.com"]

	// Cross-user engagement so the browse page isn't all zeros.
	likes := []struct {
		user model.User
		idea model.Idea
	}{
		{alice, created[0]}, {bob, created[0]},
		{demo, created[2]}, {bob, created[2]},
		{demo, created[4]}, {alice, created[4]},
	}
	for _, l := range likes {
		if _, _, err := store.ToggleLike(ctx, l.user.ID, l.idea.ID); err != nil {
			return fmt.Errorf("like %q: %w", l.idea.Title, err)
		}
	}

	ratings := []struct {
		user   model.User
		idea   model.Idea
		rating int
	}{
		{alice, created[0], 5}, {bob, created[0], 4},
		{demo, created[2], 4}, {bob, created[2], 5},
		{demo, created[3], 3},
		{demo, created[4], 5}, {alice, created[4], 4},
	}
	for _, r := range ratings {
		if _, _, err := store.UpsertRating(ctx, r.user.ID, r.idea.ID, r.rating); err != nil {
			return fmt.Errorf("rate %q: %w", r.idea.Title, err)
		}
	}

	comments := []struct {
		user    model.User
		idea    model.Idea
		content string
	}{
		{alice, created[0], "Would love an option for allergies. The fridge photo idea is great."},
		{bob, created[0], "How do you handle leftovers that are half-used?"},
		{demo, created[2], "We tried something like this manually and the trend line was the useful part."},
		{alice, created[4], "Does the hub work outdoors? Waterproofing seems like the hard bit."},
	}
	for _, c := range comments {
		if _, err := store.AddComment(ctx, model.Comment{
			IdeaID:     c.idea.ID,
			UserID:     c.user.ID,
			Content:    c.content,
			AuthorName: c.user.Name,
		}); err != nil {
			return fmt.Errorf("comment on %q: %w", c.idea.Title, err)
		}
	}

	logger.Info("seed: demo data loaded",
		"users", len(accounts), "ideas", len(created),
		"login", "demo@innov8.com / "+demoPassword)
	return nil
}
