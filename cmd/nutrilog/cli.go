package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/ops"
	"github.com/mkyawt/nutrilog/internal/profile"
	"github.com/mkyawt/nutrilog/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(d *deps) *cli.App {
	app := &cli.App{
		Name:    "nutrilog",
		Usage:   "Food and nutrition tracker",
		Version: Version,
		Commands: []*cli.Command{
			searchCmd(d),
			foodsCmd(d),
			recommendCmd(d),
			addFoodCmd(d),
			cleanCmd(d),
			logCmd(d),
			removeCmd(d),
			clearCmd(d),
			summaryCmd(d),
			profileCmd(d),
			calculateCmd(d),
			chatCmd(d),
			webCmd(d),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// searchCmd creates the search command.
func searchCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the food catalog by name",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results (default 10)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("query argument is required"))
			}
			output := ops.Search(d.catalog, ops.SearchInput{
				Query: c.Args().First(),
				Limit: c.Int("limit"),
			})
			return outputJSON(output)
		},
	}
}

// foodsCmd creates the foods command.
func foodsCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "foods",
		Usage: "List every food in the catalog",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.AllFoods(d.catalog))
		},
	}
}

// recommendCmd creates the recommend command.
func recommendCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "recommend",
		Usage:     "Recommend foods similar to a named food",
		ArgsUsage: "<food name>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "top-n", Aliases: []string{"n"}, Usage: "Number of recommendations (default 5)"},
		},
		Action: func(c *cli.Context) error {
			topN := c.Int("top-n")
			if topN == 0 {
				topN = d.cfg.RecommendTopN
			}
			output, err := ops.Recommend(d.rec, ops.RecommendInput{
				FoodName: c.Args().First(),
				TopN:     topN,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// addFoodCmd creates the add-food command.
func addFoodCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "add-food",
		Usage:     "Add a new food to the catalog (nutrition per 100g)",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "Food category (default Other)"},
			&cli.Float64Flag{Name: "calories", Required: true, Usage: "Calories per 100g"},
			&cli.Float64Flag{Name: "protein", Usage: "Protein grams per 100g"},
			&cli.Float64Flag{Name: "fat", Usage: "Fat grams per 100g"},
			&cli.Float64Flag{Name: "carbs", Usage: "Carbohydrate grams per 100g"},
			&cli.Float64Flag{Name: "fiber", Usage: "Fiber grams per 100g"},
			&cli.Float64Flag{Name: "sugar", Usage: "Sugar grams per 100g"},
		},
		Action: func(c *cli.Context) error {
			calories := c.Float64("calories")
			output, err := ops.AddFood(d.catalog, ops.AddFoodInput{
				Name:     c.Args().First(),
				Category: c.String("category"),
				Calories: &calories,
				Protein:  c.Float64("protein"),
				Fat:      c.Float64("fat"),
				Carbs:    c.Float64("carbs"),
				Fiber:    c.Float64("fiber"),
				Sugar:    c.Float64("sugar"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// cleanCmd creates the clean command.
func cleanCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "Remove catalog records with implausible nutrition values",
		Action: func(c *cli.Context) error {
			output, err := ops.CleanCatalog(d.catalog)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// logCmd creates the log command.
func logCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Log a food to a user's daily record",
		ArgsUsage: "<food name>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "User id"},
			&cli.Float64Flag{Name: "quantity", Aliases: []string{"q"}, Value: 1, Usage: "Serving multiplier"},
			&cli.StringFlag{Name: "date", Usage: "Date YYYY-MM-DD (default today)"},
			&cli.StringFlag{Name: "meal", Usage: "Meal tag, e.g. breakfast"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.LogFood(d.catalog, d.users, ops.LogFoodInput{
				UserID:   c.String("user"),
				Date:     c.String("date"),
				FoodName: c.Args().First(),
				Quantity: c.Float64("quantity"),
				MealType: c.String("meal"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// removeCmd creates the remove command.
func removeCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove logged entries by name, name+quantity, or entry id",
		ArgsUsage: "[food name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "User id"},
			&cli.StringFlag{Name: "date", Required: true, Usage: "Date YYYY-MM-DD"},
			&cli.Float64Flag{Name: "quantity", Aliases: []string{"q"}, Usage: "Exact quantity to match"},
			&cli.StringFlag{Name: "entry-id", Usage: "Remove a single entry by id"},
		},
		Action: func(c *cli.Context) error {
			input := ops.RemoveFoodInput{
				UserID:   c.String("user"),
				Date:     c.String("date"),
				FoodName: c.Args().First(),
				EntryID:  c.String("entry-id"),
			}
			if c.IsSet("quantity") {
				q := c.Float64("quantity")
				input.Quantity = &q
			}
			output, err := ops.RemoveFood(d.users, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Clear a user's daily record for one date",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "User id"},
			&cli.StringFlag{Name: "date", Usage: "Date YYYY-MM-DD (default today)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ClearDate(d.users, ops.ClearDateInput{
				UserID: c.String("user"),
				Date:   c.String("date"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// summaryCmd creates the summary command.
func summaryCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Show a user's daily nutrition summary",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "User id"},
			&cli.StringFlag{Name: "date", Usage: "Date YYYY-MM-DD (default today)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.DailySummary(d.catalog, d.users, ops.DailySummaryInput{
				UserID: c.String("user"),
				Date:   c.String("date"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// profileCmd creates the profile command with create/update/show subcommands.
func profileCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage user profiles",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create or replace a profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "User id"},
					&cli.StringFlag{Name: "name", Usage: "Display name"},
					&cli.IntFlag{Name: "age", Required: true, Usage: "Age in years"},
					&cli.Float64Flag{Name: "weight", Required: true, Usage: "Weight in kg"},
					&cli.Float64Flag{Name: "height", Required: true, Usage: "Height in cm"},
					&cli.StringFlag{Name: "gender", Usage: "Gender"},
					&cli.StringFlag{Name: "activity", Value: "sedentary", Usage: "Activity level"},
					&cli.StringFlag{Name: "goal", Value: "maintain", Usage: "Goal: lose|maintain|gain"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.CreateProfile(d.users, ops.CreateProfileInput{
						UserID: c.String("user"),
						Metrics: profile.Metrics{
							Name:          c.String("name"),
							Age:           c.Int("age"),
							Weight:        c.Float64("weight"),
							Height:        c.Float64("height"),
							Gender:        c.String("gender"),
							ActivityLevel: c.String("activity"),
							Goal:          c.String("goal"),
						},
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "update",
				Usage: "Update profile fields (only provided flags change)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "User id"},
					&cli.StringFlag{Name: "name", Usage: "Display name"},
					&cli.IntFlag{Name: "age", Usage: "Age in years"},
					&cli.Float64Flag{Name: "weight", Usage: "Weight in kg"},
					&cli.Float64Flag{Name: "height", Usage: "Height in cm"},
					&cli.StringFlag{Name: "gender", Usage: "Gender"},
					&cli.StringFlag{Name: "activity", Usage: "Activity level"},
					&cli.StringFlag{Name: "goal", Usage: "Goal"},
				},
				Action: func(c *cli.Context) error {
					var update profile.MetricsUpdate
					if c.IsSet("name") {
						v := c.String("name")
						update.Name = &v
					}
					if c.IsSet("age") {
						v := c.Int("age")
						update.Age = &v
					}
					if c.IsSet("weight") {
						v := c.Float64("weight")
						update.Weight = &v
					}
					if c.IsSet("height") {
						v := c.Float64("height")
						update.Height = &v
					}
					if c.IsSet("gender") {
						v := c.String("gender")
						update.Gender = &v
					}
					if c.IsSet("activity") {
						v := c.String("activity")
						update.ActivityLevel = &v
					}
					if c.IsSet("goal") {
						v := c.String("goal")
						update.Goal = &v
					}
					output, err := ops.UpdateProfile(d.users, ops.UpdateProfileInput{
						UserID: c.String("user"),
						Update: update,
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "show",
				Usage: "Show a profile with derived values",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "User id"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.GetProfile(d.users, c.String("user"))
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// calculateCmd creates the calculate command.
func calculateCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "calculate",
		Usage: "Compute BMR, TDEE, BMI, macros, and water intake from metrics",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "age", Required: true, Usage: "Age in years"},
			&cli.Float64Flag{Name: "weight", Required: true, Usage: "Weight in kg"},
			&cli.Float64Flag{Name: "height", Required: true, Usage: "Height in cm"},
			&cli.StringFlag{Name: "gender", Usage: "Gender"},
			&cli.StringFlag{Name: "activity", Usage: "Activity level (default sedentary)"},
			&cli.StringFlag{Name: "goal", Usage: "Goal (default maintain)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Calculate(ops.CalculateInput{
				Age:           c.Int("age"),
				Weight:        c.Float64("weight"),
				Height:        c.Float64("height"),
				Gender:        c.String("gender"),
				ActivityLevel: c.String("activity"),
				Goal:          c.String("goal"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// chatCmd creates the chat command.
func chatCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "chat",
		Usage:     "Ask the nutrition assistant a question",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "User id for profile-aware answers"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Chat(d.assistant, ops.ChatInput{
				UserID:  c.String("user"),
				Message: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			fmt.Println(output.Reply)
			return nil
		},
	}
}

// webCmd creates the web command.
func webCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the web UI and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8675, Usage: "Port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(d.catalog, d.users, d.rec, d.assistant, d.cfg,
				Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if appErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
