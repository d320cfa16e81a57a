package normalizer

// wordAliases maps shorthand and slang to canonical words. An empty value
// drops the word. Values must never be keys themselves, otherwise
// Normalize stops being idempotent.
var wordAliases = map[string]string{
	"u":            "you",
	"ur":           "your",
	"urs":          "yours",
	"r":            "are",
	"pls":          "please",
	"plz":          "please",
	"thx":          "thanks",
	"thnx":         "thanks",
	"thanx":        "thanks",
	"ty":           "thank you",
	"tysm":         "thank you so much",
	"bc":           "because",
	"cuz":          "because",
	"wat":          "what",
	"wut":          "what",
	"whats":        "what is",
	"what's":       "what is",
	"hows":         "how is",
	"how's":        "how is",
	"whos":         "who is",
	"who's":        "who is",
	"wheres":       "where is",
	"where's":      "where is",
	"abt":          "about",
	"bout":         "about",
	"exp":          "experience",
	"proj":         "project",
	"projs":        "projects",
	"hru":          "how are you",
	"sup":          "what is up",
	"wassup":       "what is up",
	"gm":           "good morning",
	"gn":           "good night",
	"yo":           "hey",
	"hii":          "hi",
	"hiii":         "hi",
	"helo":         "hello",
	"byee":         "bye",
	"cya":          "see you",
	"ttyl":         "talk later",
	"tech":         "technology",
	"techs":        "technologies",
	"uni":          "university",
	"univ":         "university",
	"linkedin.com": "linkedin",
	"um":           "",
	"umm":          "",
	"uh":           "",
	"uhh":          "",
	"hmm":          "",
	"hmmm":         "",
	"lol":          "",
	"lmao":         "",
	"btw":          "",
}

// followUpMarkers signal that the user continues the previous topic.
var followUpMarkers = []string{
	"tell me more",
	"what about",
	"more details",
	"continue",
	"go on",
	"elaborate",
	"more",
	"and",
	"that",
	"it",
}
