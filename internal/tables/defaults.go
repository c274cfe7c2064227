package tables

// Default returns the compiled-in tables. Each call returns fresh maps and
// slices so callers may modify the result.
func Default() Tables {
	return Tables{
		Lexicon: map[string]string{
			// happy
			"joyful": "happy", "cheerful": "happy", "elated": "happy", "blissful": "happy",
			"content": "happy", "hopeful": "happy", "upbeat": "happy", "ecstatic": "happy",
			"triumphant": "happy", "joy": "happy",

			// sad
			"melancholy": "sad", "gloomy": "sad", "pensive": "sad", "sorrowful": "sad",
			"reflective": "sad", "heartbroken": "sad", "wistful": "sad", "somber": "sad",
			"sadness": "sad",

			// energetic
			"pumped": "energetic", "motivated": "energetic", "victorious": "energetic",
			"intense": "energetic", "fired": "energetic", "unstoppable": "energetic",
			"rebellious": "energetic", "powerful": "energetic",

			// calm
			"peaceful": "calm", "serene": "calm", "mellow": "calm", "tranquil": "calm",
			"contemplative": "calm", "easygoing": "calm", "soothing": "calm", "meditative": "calm",

			// romantic
			"passionate": "romantic", "loving": "romantic", "affectionate": "romantic",
			"sentimental": "romantic", "dreamy": "romantic", "enamored": "romantic",
			"tender": "romantic", "adoring": "romantic",

			// angry
			"anger": "angry", "furious": "angry", "rage": "angry", "mad": "angry",
			"irritated": "angry", "livid": "angry", "outraged": "angry",

			// fear
			"fear": "fear", "scared": "fear", "terrified": "fear", "anxious": "fear",
			"worried": "fear", "nervous": "fear", "frightened": "fear",

			// surprise
			"surprise": "surprise", "surprised": "surprise", "amazed": "surprise",
			"astonished": "surprise", "shocked": "surprise", "startled": "surprise",

			// disgust
			"disgust": "disgust", "disgusted": "disgust", "repulsed": "disgust",
			"revolted": "disgust", "sickened": "disgust",
		},

		Profiles: map[string]Profile{
			"happy":     {Valence: 0.85, Energy: 0.80, Tempo: 130, Danceability: 0.75},
			"sad":       {Valence: 0.20, Energy: 0.25, Tempo: 75, Danceability: 0.30},
			"energetic": {Valence: 0.75, Energy: 0.90, Tempo: 145, Danceability: 0.85},
			"calm":      {Valence: 0.60, Energy: 0.25, Tempo: 85, Danceability: 0.40},
			"romantic":  {Valence: 0.70, Energy: 0.45, Tempo: 95, Danceability: 0.55},
			"angry":     {Valence: 0.25, Energy: 0.95, Tempo: 150, Danceability: 0.70},
			"fear":      {Valence: 0.15, Energy: 0.60, Tempo: 110, Danceability: 0.35},
			"surprise":  {Valence: 0.65, Energy: 0.75, Tempo: 125, Danceability: 0.65},
			"disgust":   {Valence: 0.10, Energy: 0.40, Tempo: 90, Danceability: 0.25},
		},

		GenreAllowList: []string{"indian", "bollywood", "filmi", "world-music", "pop", "folk", "classical"},
		FallbackGenres: []string{"pop", "rock", "electronic"},
		SeedArtists: []string{
			"A.R. Rahman", "Arijit Singh", "Shreya Ghoshal",
			"Rahat Fateh Ali Khan", "Armaan Malik", "Neha Kakkar",
		},

		SearchQueries: map[string][]string{
			"happy_energetic": {
				"hindi bollywood happy song", "bollywood dance hindi", "arijit singh upbeat hindi",
				"shreya ghoshal bollywood happy", "hindi celebration song", "bollywood party hindi",
			},
			"angry_intense": {
				"hindi bollywood intense", "bollywood powerful hindi song", "hindi action song",
				"bollywood rock hindi", "hindi motivational song", "bollywood energy hindi",
			},
			"sad_low": {
				"hindi bollywood sad song", "arijit singh emotional hindi", "bollywood breakup hindi",
				"hindi heartbreak song", "shreya ghoshal sad hindi", "bollywood emotional hindi",
			},
			"dark": {
				"hindi bollywood dark song", "bollywood thriller hindi", "hindi suspense song",
				"bollywood dramatic hindi", "hindi intense song", "bollywood mystery hindi",
			},
			"calm": {
				"hindi bollywood romantic", "bollywood love song hindi", "hindi melodic song",
				"arijit singh romantic hindi", "shreya ghoshal love hindi", "bollywood slow hindi",
			},
			"high_energy": {
				"hindi bollywood energetic", "bollywood dance hindi song", "hindi party song",
				"bollywood fast hindi", "hindi celebration", "bollywood upbeat hindi",
			},
			"romantic": {
				"hindi bollywood love song", "bollywood romantic hindi", "arijit singh love hindi",
				"shreya ghoshal romantic hindi", "hindi melody song", "bollywood soulful hindi",
			},
			"default": {
				"hindi bollywood song", "bollywood hindi film song", "arijit singh hindi",
				"shreya ghoshal bollywood", "ar rahman hindi", "bollywood music hindi",
			},
		},

		RelevanceKeywords: []string{
			"hindi", "bollywood", "filmi", "indian",
			"dil", "pyaar", "mohabbat", "ishq", "saath", "zindagi", "khuda", "rab",
			"meri", "tera", "mere", "tere", "main", "tu", "hum", "tumhe",
			"kya", "hai", "ho", "na", "se", "ki", "ka", "ke", "wala", "wali",
			"from", "soundtrack", "film", "movie", "picture",
		},
		RelevanceArtists: []string{
			"arijit singh", "shreya ghoshal", "a.r. rahman", "ar rahman", "rahat fateh ali khan",
			"sonu nigam", "alka yagnik", "udit narayan", "kumar sanu", "lata mangeshkar",
			"kishore kumar", "mohammed rafi", "asha bhosle", "armaan malik", "neha kakkar",
			"atif aslam", "vishal dadlani", "shaan", "kailash kher", "jubin nautiyal",
			"darshan raval", "guru randhawa", "badshah", "yo yo honey singh", "mika singh",
			"sunidhi chauhan", "shilpa rao", "asees kaur", "tulsi kumar", "palak muchhal",
			"rahat fateh", "mohit chauhan", "benny dayal", "k.k.", "kk", "shantanu moitra",
			"vishal-shekhar", "shankar-ehsaan-loy", "sajid-wajid", "nadeem-shravan",
			"jatin-lalit", "anand-milind", "laxmikant-pyarelal", "r.d. burman", "rd burman",
			"ilaiyaraaja", "harris jayaraj", "devi sri prasad", "thaman", "pritam",
			"tanishk bagchi", "amaal mallik", "sachin-jigar", "meet bros", "himesh reshammiya",
		},
		SourcePhrases:  []string{"(from ", "- from ", "theme", "title track"},
		VariantPhrases: []string{"version", "reprise", "remix", "unplugged"},

		RankKeywords: map[string][]string{
			"happy_energetic": {"happy", "dance", "party", "celebration", "joy", "fun", "upbeat", "cheerful"},
			"angry_intense":   {"power", "intense", "strong", "fight", "battle", "action", "rock", "force"},
			"sad_low":         {"sad", "cry", "heart", "break", "emotional", "pain", "tears", "lonely", "melancholy"},
			"dark":            {"dark", "fear", "shadow", "mystery", "thriller", "dramatic", "suspense"},
			"calm":            {"love", "romantic", "heart", "pyaar", "mohabbat", "dil", "ishq", "peaceful", "serene"},
			"high_energy":     {"energy", "power", "strong", "fast", "rock", "beat", "pumped", "victory"},
			"romantic":        {"love", "romantic", "heart", "pyaar", "mohabbat", "dil", "ishq", "tender", "passionate"},
		},
		EmotionalArtists: []string{"arijit singh", "rahat fateh"},
		UpbeatArtists:    []string{"vishal dadlani", "benny dayal"},

		FillerTokens: []string{"song", "music", "hindi", "bollywood", "full", "complete", "official"},
	}
}
