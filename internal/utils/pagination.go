package utils

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Window bounds for the different listing endpoints.
var (
	ListingWindow     = WindowLimits{Default: 20, Max: 100}
	TrendingWindow    = WindowLimits{Default: 10, Max: 50}
	PersonalWindow    = WindowLimits{Default: 10, Max: 20}
	ReviewWindow      = WindowLimits{Default: 20, Max: 100}
	SessionListWindow = WindowLimits{Default: 100, Max: 100}
)

// WindowLimits configures the default and maximum page size.
type WindowLimits struct {
	Default int
	Max     int
}

// Window holds skip/limit paging parameters.
type Window struct {
	Skip  int
	Limit int
}

// Clamp applies the default and cap to limit and rejects a negative skip.
func (w WindowLimits) Clamp(skip, limit int) (Window, error) {
	if skip < 0 {
		return Window{}, fiber.NewError(fiber.StatusBadRequest, "skip must be greater than or equal to 0")
	}
	if limit <= 0 {
		limit = w.Default
	}
	if limit > w.Max {
		limit = w.Max
	}
	return Window{Skip: skip, Limit: limit}, nil
}

// ParseWindow reads skip and limit query params.
func ParseWindow(c *fiber.Ctx, limits WindowLimits) (Window, error) {
	skip, err := QueryInt(c, "skip", 0)
	if err != nil {
		return Window{}, err
	}
	limit, err := QueryInt(c, "limit", limits.Default)
	if err != nil {
		return Window{}, err
	}
	return limits.Clamp(skip, limit)
}

// QueryInt reads an integer query param, falling back when absent.
func QueryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" must be an integer")
	}
	return parsed, nil
}

// QueryFloat reads an optional float query param.
func QueryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be a number")
	}
	return &parsed, nil
}

// QueryBool reads an optional boolean query param.
func QueryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be a boolean")
	}
	return &parsed, nil
}

// QueryList collects a repeated or comma separated query param.
// Both ?sizes=S&sizes=M and ?sizes=S,M yield [S M].
func QueryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(raw), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
