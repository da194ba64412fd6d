package lexicon

var defaultStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "almost", "also", "although",
	"always", "am", "among", "an", "and", "another", "any", "are", "around", "as", "at",
	"be", "became", "because", "become", "becomes", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "cannot", "could", "did", "do", "does", "doing",
	"done", "down", "during", "each", "either", "else", "enough", "etc", "even", "ever",
	"every", "few", "for", "from", "further", "had", "has", "have", "having", "he", "her",
	"here", "hers", "herself", "him", "himself", "his", "how", "however", "i", "if", "in",
	"into", "is", "it", "its", "itself", "just", "least", "less", "like", "made", "make",
	"makes", "many", "may", "me", "might", "more", "most", "much", "must", "my", "myself",
	"neither", "never", "no", "nor", "not", "now", "of", "off", "often", "on", "once", "one",
	"only", "or", "other", "others", "otherwise", "our", "ours", "ourselves", "out", "over",
	"own", "per", "perhaps", "quite", "rather", "same", "several", "shall", "she", "should",
	"since", "so", "some", "such", "than", "that", "the", "their", "theirs", "them",
	"themselves", "then", "there", "therefore", "these", "they", "this", "those", "though",
	"through", "thus", "to", "too", "toward", "towards", "under", "until", "up", "upon",
	"us", "use", "used", "uses", "using", "usually", "very", "via", "was", "we", "well",
	"were", "what", "when", "where", "whereas", "whether", "which", "while", "who", "whom",
	"whose", "why", "will", "with", "within", "without", "would", "yet", "you", "your",
	"yours", "yourself", "called", "known", "include", "includes", "including", "within",
	"onto", "among", "across", "along", "because", "according",
}

var defaultAbbreviations = []string{
	"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "mt", "ft", "vs", "etc", "e.g", "i.e",
	"fig", "figs", "no", "nos", "vol", "vols", "approx", "inc", "ltd", "co", "corp", "dept",
	"est", "gen", "gov", "jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept",
	"oct", "nov", "dec", "u.s", "u.k", "a.m", "p.m", "ca", "cf", "al", "ed", "eds", "p", "pp",
	"ch", "sec", "eq", "min", "max", "mm", "cm", "km", "kg", "lb", "oz",
}

var defaultDeterminers = []string{
	"a", "an", "the", "this", "that", "these", "those", "its", "their", "his", "her", "our",
	"your", "my", "each", "every", "some", "any", "all", "both", "many", "most",
}

var defaultPronouns = []string{
	"it", "this", "that", "these", "those", "they", "he", "she", "we", "you", "i", "there",
	"here", "which", "what", "who", "one", "another", "someone", "something", "everything",
	"nothing", "each", "all", "both", "some", "such",
}

var defaultCopulas = []string{"is", "are", "was", "were"}

var defaultPrepositions = []string{
	"in", "into", "inside", "within", "at", "on", "onto", "by", "from", "to", "toward",
	"towards", "through", "during", "of", "with", "near", "under", "over", "between",
	"among", "across", "around", "via", "throughout",
}

var defaultPolarity = [][2]string{
	{"always", "never"},
	{"increases", "decreases"},
	{"increase", "decrease"},
	{"increased", "decreased"},
	{"more", "less"},
	{"larger", "smaller"},
	{"largest", "smallest"},
	{"higher", "lower"},
	{"highest", "lowest"},
	{"before", "after"},
	{"above", "below"},
	{"first", "last"},
	{"maximum", "minimum"},
	{"positive", "negative"},
	{"inside", "outside"},
	{"can", "cannot"},
	{"faster", "slower"},
	{"stronger", "weaker"},
	{"absorbs", "releases"},
	{"north", "south"},
	{"east", "west"},
	{"true", "false"},
	{"gains", "loses"},
	{"expands", "contracts"},
	{"heavier", "lighter"},
	{"warmer", "cooler"},
	{"older", "younger"},
}

var defaultTermBank = []string{
	"nucleus", "membrane", "protein", "enzyme", "molecule", "element", "compound", "catalyst",
	"electron", "neutron", "frequency", "velocity", "pressure", "density", "gravity",
	"friction", "momentum", "wavelength", "circuit", "algorithm", "variable", "function",
	"theorem", "hypothesis", "equilibrium", "structure", "organism", "tissue", "mineral",
	"sediment", "glacier", "plateau", "treaty", "empire", "republic", "revolution",
	"parliament", "economy", "inflation", "currency",
}

var defaultPersonBank = []string{
	"Isaac Newton", "Marie Curie", "Charles Darwin", "Galileo Galilei", "Ada Lovelace",
	"Albert Einstein", "Nikola Tesla", "Louis Pasteur", "Gregor Mendel", "Rosalind Franklin",
	"Aristotle", "Johannes Kepler", "Dmitri Mendeleev", "Alan Turing", "Niels Bohr",
	"Michael Faraday", "Julius Caesar", "Napoleon Bonaparte", "Queen Victoria", "Cleopatra",
}

var defaultBoilerplateHeadings = []string{
	"about the author", "about the authors", "acknowledgment", "acknowledgments",
	"acknowledgement", "acknowledgements", "bibliography", "references", "table of contents",
	"contents", "index", "works cited",
}

var defaultTrivialIndicators = []string{
	"what is the title", "who is the author", "what page", "how many pages",
	"this chapter", "this book", "this document", "table of contents", "all rights reserved",
	"click here",
}
