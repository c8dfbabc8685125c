package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/query"
	"github.com/claude/liftlog/internal/units"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

var toolGetProfile = mcp.NewTool("get_profile",
	mcp.WithDescription("Get the user's profile: name, age, height and weight in both unit systems, and onboarding status."),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List logged workouts newest first, optionally limited to a date range. Each workout includes its exercises and sets."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to the beginning of history.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolSearchWorkouts = mcp.NewTool("search_workouts",
	mcp.WithDescription("Find workouts whose notes or exercise names contain the query (case-insensitive substring)."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search text, e.g. 'squat' or 'leg day'")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get one workout by ID with all exercises and sets."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout session UUID")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Aggregate statistics: total workouts and distinct workout days."),
)

func (h *handlers) getProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, err := h.store.GetProfile(ctx)
	if err != nil {
		h.log.Error("mcp get_profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out := map[string]any{
		"name":                profile.Name,
		"age":                 profile.Age,
		"height_cm":           units.ConvertHeight(profile.Height, profile.HeightUnit, models.HeightCm),
		"height_in":           units.ConvertHeight(profile.Height, profile.HeightUnit, models.HeightIn),
		"weight_kg":           units.ConvertWeight(profile.Weight, profile.WeightUnit, models.WeightKg),
		"weight_lbs":          units.ConvertWeight(profile.Weight, profile.WeightUnit, models.WeightLbs),
		"preferred_units":     map[string]string{"height": string(profile.HeightUnit), "weight": string(profile.WeightUnit)},
		"onboarding_complete": profile.OnboardingComplete,
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.loadSorted(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	start, end, err := parseRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	sessions = inRange(sessions, start, end)

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) searchWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	sessions, err := h.loadSorted(ctx)
	if err != nil {
		h.log.Error("mcp search_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(query.Filter(sessions, q))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout id"), nil
	}

	sess, err := h.store.GetSession(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sess)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, err := h.store.GetProfile(ctx)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	stats, err := h.query.Stats(ctx, profile.ID)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.loadSorted(ctx)
	if err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -14)
	data, err := json.Marshal(inRange(sessions, start, end))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) loadSorted(ctx context.Context) ([]models.Session, error) {
	profile, err := h.store.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	return h.query.ListSessionsByDateDesc(ctx, profile.ID)
}

// parseRange accepts ISO 8601 or plain dates; zero values mean
// unbounded start / now-bounded end.
func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}
	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func inRange(sessions []models.Session, start, end time.Time) []models.Session {
	var out []models.Session
	for _, sess := range sessions {
		if !start.IsZero() && sess.Date.Before(start) {
			continue
		}
		if sess.Date.After(end) {
			continue
		}
		out = append(out, sess)
	}
	return out
}
