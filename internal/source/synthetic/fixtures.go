package synthetic

import (
	"time"

	"github.com/pribylovaa/trending-curator/internal/models"
)

type fixture struct {
	slug          string
	title         string
	description   string
	author        string
	tags          []string
	category      models.Category
	age           time.Duration
	trending      float64
	tech          float64
	entertainment float64
}

// fixtures — по две статьи на категорию, возраст у всех разный.
var fixtures = []fixture{
	{"open-weights-model", "Open-weights model tops reasoning benchmarks", "A new open-weights LLM matches frontier models on math and code.", "@ml_daily", []string{"AI", "LLM"}, models.CategoryAI, 40 * time.Minute, 92, 95, 30},
	{"agents-in-prod", "Teams share lessons from running AI agents in production", "Engineers describe guardrails, evals and cost control for agent workloads.", "@infra_notes", []string{"AI", "agents"}, models.CategoryAI, 5 * time.Hour, 71, 88, 25},
	{"go-release", "Go release brings faster builds and iterator improvements", "The new toolchain cuts build times and polishes range-over-func.", "@gopher_news", []string{"golang"}, models.CategoryProgramming, 2 * time.Hour, 68, 90, 15},
	{"rust-kernel", "More Rust drivers land in the Linux kernel", "Maintainers merged another batch of Rust-based drivers.", "@kernel_watch", []string{"rust", "linux"}, models.CategoryProgramming, 9 * time.Hour, 55, 85, 12},
	{"cloud-outage", "Major cloud provider recovers from regional outage", "A networking fault took down services in one region for three hours.", "@status_feed", []string{"cloud", "outage"}, models.CategoryTech, 90 * time.Minute, 80, 82, 20},
	{"chip-fab", "New chip fab breaks ground with 2nm roadmap", "The plant targets volume production of 2nm semiconductors.", "@silicon_beat", []string{"semiconductors"}, models.CategoryTech, 14 * time.Hour, 47, 78, 18},
	{"foldable-review", "Foldable phone review: the crease is finally gone", "Hands-on with this year's flagship foldable smartphone.", "@gadget_lab", []string{"smartphone", "review"}, models.CategoryGadget, 3 * time.Hour, 63, 70, 45},
	{"smartwatch-battery", "Smartwatch with two-week battery life announced", "The wearable trades a brighter screen for endurance.", "@wearables", []string{"wearables"}, models.CategoryGadget, 20 * time.Hour, 38, 62, 40},
	{"indie-hit", "Indie game sells one million copies in a week", "A two-person studio's roguelike tops the store charts.", "@play_report", []string{"gaming", "indie"}, models.CategoryGaming, 4 * time.Hour, 74, 35, 85},
	{"console-price", "Console maker announces price cut ahead of holidays", "The discount applies to both digital and disc editions.", "@console_desk", []string{"gaming"}, models.CategoryGaming, 26 * time.Hour, 42, 30, 78},
	{"box-office", "Sci-fi sequel leads weekend box office", "The film opened above forecasts in domestic theaters.", "@screen_daily", []string{"movies"}, models.CategoryEntertainment, 6 * time.Hour, 66, 12, 90},
	{"album-drop", "Surprise album drop breaks streaming records", "Fans streamed the record over 100 million times on day one.", "@music_wire", []string{"music"}, models.CategoryEntertainment, 30 * time.Hour, 58, 10, 88},
	{"cup-final", "Underdogs win the cup final on penalties", "A late equaliser forced extra time before the shootout.", "@pitchside", []string{"football"}, models.CategorySports, 7 * time.Hour, 61, 8, 80},
	{"record-marathon", "Marathon world record falls in Berlin", "The winner beat the previous mark by 40 seconds.", "@run_news", []string{"athletics"}, models.CategorySports, 36 * time.Hour, 44, 10, 72},
	{"startup-round", "Developer-tools startup raises Series B", "The round values the company at two billion dollars.", "@vc_brief", []string{"startups", "funding"}, models.CategoryBusiness, 8 * time.Hour, 52, 45, 25},
	{"earnings", "Chipmaker earnings beat expectations on data-center demand", "Revenue grew 60% year over year.", "@markets_now", []string{"earnings"}, models.CategoryBusiness, 40 * time.Hour, 49, 50, 22},
	{"telescope-image", "Space telescope captures image of a forming planet", "Astronomers observed a protoplanet carving a gap in its disk.", "@astro_daily", []string{"space", "astronomy"}, models.CategoryScience, 10 * time.Hour, 57, 48, 40},
	{"quantum-error", "Researchers demonstrate below-threshold quantum error correction", "Logical qubits outlived their physical counterparts.", "@quantum_lab", []string{"quantum"}, models.CategoryScience, 48 * time.Hour, 46, 60, 30},
	{"city-park", "City opens its largest new park in decades", "The park replaces a former rail yard downtown.", "@local_news", []string{"city"}, models.CategoryOther, 12 * time.Hour, 25, 15, 40},
	{"food-trend", "Fermented snacks become this summer's food trend", "Grocery chains report a jump in sales.", "@food_feed", []string{"food"}, models.CategoryOther, 60 * time.Hour, 20, 5, 45},
}
