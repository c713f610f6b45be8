// Package lexicon holds the keyword tables used by the pain scorer and praise filter.
// Tables are plain data; Match is the only scanner and treats every table the same way.
package lexicon

import "github.com/ternarybob/painscope/internal/models"

// High-intensity pain. Any hit here dominates the score.
var High = []string{
	"nightmare",
	"frustrated",
	"frustrating",
	"hate",
	"terrible",
	"awful",
	"horrible",
	"furious",
	"unbearable",
	"infuriating",
	"desperate",
	"useless",
	"worst",
	"broken",
	"impossible",
	"at my wit's end",
	"fed up",
	"sick of",
	"sick and tired",
	"can't stand",
	"drives me crazy",
	"driving me crazy",
	"pulling my hair out",
	"last straw",
	"waste of time",
	"giving up on",
	"so annoying",
}

// Medium-intensity pain
var Medium = []string{
	"struggling",
	"struggle",
	"difficult",
	"confusing",
	"annoying",
	"annoyed",
	"hard",
	"painful",
	"tedious",
	"complicated",
	"cumbersome",
	"clunky",
	"stuck",
	"headache",
	"hassle",
	"inefficient",
	"problem",
	"issue",
	"slow",
	"buggy",
	"time-consuming",
	"doesn't work",
	"does not work",
	"not working",
	"keeps crashing",
}

// Low-intensity musing. On its own it never scores above the low cap.
var Low = []string{
	"wondering",
	"maybe",
	"curious",
	"might",
	"wish",
	"considering",
	"thinking about",
	"would be nice",
	"nice to have",
	"could be better",
	"minor",
}

// SolutionSeeking phrases signal the author is actively shopping for a fix
var SolutionSeeking = []string{
	"looking for",
	"recommendations",
	"any suggestions",
	"suggestions",
	"anyone know",
	"does anyone",
	"is there a",
	"is there any",
	"alternative to",
	"alternatives",
	"what do you use",
	"how do you",
	"best way to",
	"need a tool",
	"tool for",
	"help me find",
}

// WTPStrong phrases state intent to pay outright
var WTPStrong = []string{
	"would pay",
	"i'd pay",
	"willing to pay",
	"happy to pay",
	"gladly pay",
	"take my money",
	"worth every penny",
	"pay good money",
	"shut up and take",
	"instant buy",
	"would buy",
	"would subscribe",
}

// WTPPricing is weaker purchase vocabulary
var WTPPricing = []string{
	"pricing",
	"budget",
	"subscription",
	"per month",
	"per year",
	"per seat",
	"license",
	"premium",
	"paid plan",
	"price",
	"invest in",
}

// WTPExclusions cancel any WTP reading. Exclusion always wins.
var WTPExclusions = []string{
	"refund",
	"money back",
	"buyer's remorse",
	"regret buying",
	"regret paying",
	"regret purchasing",
	"regret the purchase",
	"wish i hadn't bought",
	"wish i never bought",
	"waste of money",
	"budget was cut",
	"budget got cut",
	"budget cut",
	"can't afford",
	"cannot afford",
	"cancelled my subscription",
	"canceled my subscription",
	"chargeback",
}

// NegativeHypothetical frames pain as imagined rather than lived
var NegativeHypothetical = []string{
	"would be terrible if",
	"would be awful if",
	"would be a nightmare if",
	"would be frustrating if",
	"would hate it if",
	"imagine if",
	"what if",
	"if i ever",
	"hypothetically",
}

// NegativeThirdParty attributes the pain to someone else's product outright
var NegativeThirdParty = []string{
	"hate the competition",
	"the competition's",
	"competitor's",
	"competitors'",
	"other people's",
	"my friend's",
}

// ThirdPartySubjects name someone else. They frame the text as third-party
// only when pain vocabulary follows them ("their users hate it").
var ThirdPartySubjects = []string{
	"their customers",
	"their users",
	"their clients",
	"other people",
	"my friend",
}

// NegativeResolved describes pain that is already over
var NegativeResolved = []string{
	"finally fixed",
	"got fixed",
	"was fixed",
	"been fixed",
	"problem solved",
	"solved it",
	"was resolved",
	"been resolved",
	"got resolved",
}

// ResolvedLeadIns put what follows in the past. They frame the text as resolved
// only when pain vocabulary follows them ("used to be confusing", "no longer a problem").
var ResolvedLeadIns = []string{
	"used to be",
	"used to",
	"no longer",
}

// PastPain adds past-tense pain verbs that can follow a lead-in
var PastPain = []string{
	"hated",
	"struggled",
	"dreaded",
	"dread",
}

// Emotions maps each non-neutral emotion to its keyword cluster
var Emotions = map[models.Emotion][]string{
	models.EmotionFrustration: {
		"frustrated", "frustrating", "annoyed", "annoying", "fed up", "sick of",
		"hate", "infuriating", "drives me crazy", "driving me crazy", "furious", "ugh",
	},
	models.EmotionAnxiety: {
		"worried", "anxious", "nervous", "scared", "afraid", "stressed",
		"stress", "panic", "overwhelmed", "terrified",
	},
	models.EmotionDisappointment: {
		"disappointed", "disappointing", "let down", "letdown", "underwhelming",
		"expected more", "regret", "sad", "shame",
	},
	models.EmotionConfusion: {
		"confused", "confusing", "don't understand", "no idea", "unclear",
		"makes no sense", "lost", "baffled", "how does",
	},
	models.EmotionHope: {
		"hope", "hoping", "looking forward", "excited", "would love",
		"fingers crossed", "can't wait", "wish",
	},
}

// PraiseIdioms are negated phrasings that still read as praise
var PraiseIdioms = []string{
	"can't imagine living without",
	"can't imagine life without",
	"can't imagine working without",
	"can't live without",
	"can't recommend enough",
	"can't recommend it enough",
	"can't recommend this enough",
	"can't say enough good",
	"can't go back",
	"nothing bad to say",
	"no complaints",
	"couldn't be happier",
	"couldn't ask for more",
	"never disappoints",
}

// ComplaintIdioms are negated phrasings that always read as complaints
var ComplaintIdioms = []string{
	"can't figure out",
	"can't get it to",
	"can't seem to",
	"can't find",
	"can't log in",
	"can't login",
	"can't believe how bad",
	"can't even",
	"won't let me",
	"doesn't let me",
	"unable to",
}
