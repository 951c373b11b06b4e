// Package assistant answers food and diet questions with rule-based
// pattern matching over the catalog and profile store. It is a
// collaborator of the core, not part of it: string templating, no
// algorithmic machinery.
package assistant

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/food"
	"github.com/mkyawt/nutrilog/internal/nutrition"
	"github.com/mkyawt/nutrilog/internal/profile"
	"github.com/mkyawt/nutrilog/internal/recommend"
)

// Assistant resolves questions against catalog and profile state.
type Assistant struct {
	catalog     *catalog.Catalog
	users       *profile.Store
	recommender *recommend.Recommender
}

// New creates an Assistant over the shared application state.
func New(cat *catalog.Catalog, users *profile.Store, rec *recommend.Recommender) *Assistant {
	return &Assistant{catalog: cat, users: users, recommender: rec}
}

var (
	greetingWords = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}
	goodbyeWords  = []string{"bye", "goodbye", "see you", "thanks", "thank you"}

	caloriesPattern  = regexp.MustCompile(`calories\s+(?:in|of|for)\s+(.+?)\s*\??$`)
	nutritionPattern = regexp.MustCompile(`(?:nutrition|nutrients|macros)\s+(?:in|of|for)\s+(.+?)\s*\??$`)
	comparePattern   = regexp.MustCompile(`compare\s+(.+?)\s+(?:and|vs|with|to)\s+(.+?)\s*\??$`)
	recommendPattern = regexp.MustCompile(`(?:recommend|suggest)\s+(?:something\s+)?(?:like|similar\s+to)\s+(.+?)\s*\??$`)
)

// Reply produces an answer for one user message. It never fails; the
// worst case is the generic fallback response. userID may be empty for
// anonymous questions; profile-dependent answers then degrade to
// general advice.
func (a *Assistant) Reply(userID, message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return "Ask me about a food's calories or nutrition, comparisons, or what to eat next."
	}

	if containsAny(msg, goodbyeWords) && !containsAny(msg, greetingWords) {
		return "Goodbye! Keep logging your meals."
	}
	if containsAny(msg, greetingWords) {
		return a.greeting(userID)
	}
	if strings.Contains(msg, "help") {
		return "I can answer things like:\n" +
			"- calories in banana\n" +
			"- nutrition in chicken breast\n" +
			"- compare apple and banana\n" +
			"- recommend something like oats\n" +
			"- high protein foods\n" +
			"- how many calories should I eat"
	}

	if m := comparePattern.FindStringSubmatch(msg); m != nil {
		return a.compare(m[1], m[2])
	}
	if m := recommendPattern.FindStringSubmatch(msg); m != nil {
		return a.recommendLike(m[1])
	}
	if m := caloriesPattern.FindStringSubmatch(msg); m != nil {
		return a.caloriesIn(m[1])
	}
	if m := nutritionPattern.FindStringSubmatch(msg); m != nil {
		return a.nutritionDetails(m[1])
	}
	if strings.Contains(msg, "high protein") || strings.Contains(msg, "protein foods") {
		return a.highProteinFoods()
	}
	if strings.Contains(msg, "should i eat") || strings.Contains(msg, "calorie target") ||
		strings.Contains(msg, "how many calories") {
		return a.calorieTarget(userID)
	}
	if strings.Contains(msg, "lose weight") {
		return "A steady deficit of about 500 calories a day is the usual starting point. " +
			"Set your goal to \"lose\" and your daily target adjusts automatically."
	}
	if strings.Contains(msg, "gain weight") || strings.Contains(msg, "build muscle") {
		return "Aim for a surplus of about 500 calories a day with plenty of protein. " +
			"Set your goal to \"gain\" and your daily target adjusts automatically."
	}
	if strings.Contains(msg, "bmi") {
		return a.bmiAnswer(userID)
	}
	if strings.Contains(msg, "water") {
		return a.waterAnswer(userID)
	}

	// Last resort: the whole message might just be a food name.
	if rec, err := a.catalog.ResolveForLogging(msg); err == nil {
		return a.describe(rec)
	}
	return "I didn't catch that. Try \"help\" to see what I can answer."
}

func (a *Assistant) greeting(userID string) string {
	if p, ok := a.users.Get(userID); ok {
		return fmt.Sprintf("Hello %s! Ask me about foods, or say \"help\" for ideas.", p.Name)
	}
	return "Hello! Ask me about foods, or say \"help\" for ideas."
}

func (a *Assistant) caloriesIn(name string) string {
	rec, err := a.catalog.ResolveForLogging(name)
	if err != nil {
		return fmt.Sprintf("I couldn't find %q in the food database.", name)
	}
	return fmt.Sprintf("%s has %.0f calories per 100g serving.", rec.Name, rec.Calories)
}

func (a *Assistant) nutritionDetails(name string) string {
	rec, err := a.catalog.ResolveForLogging(name)
	if err != nil {
		return fmt.Sprintf("I couldn't find %q in the food database.", name)
	}
	return a.describe(rec)
}

func (a *Assistant) describe(rec food.Record) string {
	return fmt.Sprintf(
		"%s (per 100g): %.0f kcal, %.1fg protein, %.1fg fat, %.1fg carbs, %.1fg fiber, %.1fg sugar.",
		rec.Name, rec.Calories, rec.Protein, rec.Fat, rec.Carbs, rec.Fiber, rec.Sugar)
}

func (a *Assistant) compare(name1, name2 string) string {
	rec1, err1 := a.catalog.ResolveForLogging(name1)
	rec2, err2 := a.catalog.ResolveForLogging(name2)
	if err1 != nil || err2 != nil {
		return "I need both foods to be in the database to compare them."
	}

	lower, higher := rec1, rec2
	if lower.Calories > higher.Calories {
		lower, higher = higher, lower
	}
	return fmt.Sprintf("%s\n%s\n%s has fewer calories per 100g.",
		a.describe(rec1), a.describe(rec2), lower.Name)
}

func (a *Assistant) recommendLike(name string) string {
	recs := a.recommender.Recommend(name, 3)
	if len(recs) == 0 {
		return "I have nothing to recommend yet. The food database looks empty."
	}
	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.Name
	}
	return fmt.Sprintf("Nutritionally close to %s: %s.", name, strings.Join(names, ", "))
}

func (a *Assistant) highProteinFoods() string {
	records := a.catalog.Records()
	if len(records) == 0 {
		return "The food database is empty."
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Protein > records[j].Protein
	})
	n := min(5, len(records))
	parts := make([]string, n)
	for i, r := range records[:n] {
		parts[i] = fmt.Sprintf("%s (%.1fg)", r.Name, r.Protein)
	}
	return "Highest-protein foods per 100g: " + strings.Join(parts, ", ") + "."
}

func (a *Assistant) calorieTarget(userID string) string {
	p, ok := a.users.Get(userID)
	if !ok {
		return "Set up your profile first and I can give you a personal daily calorie target."
	}
	return fmt.Sprintf("Your daily target is %.0f calories (BMR %.0f, %s activity, goal %s).",
		p.DailyCalories, p.BMR, p.ActivityLevel, p.Goal)
}

func (a *Assistant) bmiAnswer(userID string) string {
	p, ok := a.users.Get(userID)
	if !ok {
		return "Set up your profile first and I can compute your BMI."
	}
	bmi := nutrition.BMI(p.Weight, p.Height)
	return fmt.Sprintf("Your BMI is %.1f (%s).", bmi, nutrition.BMICategory(bmi))
}

func (a *Assistant) waterAnswer(userID string) string {
	p, ok := a.users.Get(userID)
	if !ok {
		return "A common guideline is about 33ml of water per kilogram of body weight per day."
	}
	return fmt.Sprintf("Aim for about %.1f liters of water a day.",
		nutrition.WaterIntake(p.Weight, p.ActivityLevel))
}

// containsAny matches single words on word boundaries (so "high" does
// not trigger "hi") and multiword phrases by containment.
func containsAny(msg string, words []string) bool {
	tokens := strings.FieldsFunc(msg, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		if strings.Contains(w, " ") {
			if strings.Contains(msg, w) {
				return true
			}
			continue
		}
		for _, tok := range tokens {
			if tok == w {
				return true
			}
		}
	}
	return false
}
