package directory

// CategorySeed categoría del catálogo inicial.
type CategorySeed struct {
	Name        string
	Description string
	Icon        string
	Order       int
	Services    []ServiceSeed
}

// ServiceSeed servicio del catálogo inicial.
type ServiceSeed struct {
	Name        string
	Description string
}

// Catalog datos iniciales.
type Catalog struct {
	Cities     []string
	Categories []CategorySeed
}

// KosovoCatalog municipios de Kosovo y las seis categorías de limpieza.
func KosovoCatalog() Catalog {
	return Catalog{
		Cities: []string{
			"Prishtina", "Prizren", "Gjakova", "Peja", "Ferizaj", "Gjilan", "Mitrovica",
			"Vushtrri", "Podujeva", "Rahovec", "Lipjan", "Malisheva", "Suhareka", "Kamenica",
			"Viti", "Skenderaj", "Istog", "Kline", "Dragash", "Shtime", "Kacanik", "Novoberde",
			"Hani i Elezit", "Junik", "Mamusha", "Partesh", "Ranillug", "Gracanica", "Artana",
			"Zubin Potok", "Zvecan",
		},
		Categories: []CategorySeed{
			{
				Name:        "Pastrime Shtëpiake / Rezidenciale",
				Description: "Mbaj shtëpinë tënde gjithmonë të pastër, të freskët dhe mikpritëse.",
				Icon:        "🏠",
				Order:       1,
				Services: []ServiceSeed{
					{"Pastrim i përgjithshëm (dritare, dysheme, mobilje)", "Pastrim i plotë i shtëpisë duke përfshirë dritaret, dyshemetë dhe mobiljet"},
					{"Pastrim i thellë sezonal", "Pastrim i thellë sezonal për të pastruar çdo cep të shtëpisë"},
					{"Pastrim pas festave apo eventeve", "Pastrim profesional pas festave dhe eventeve"},
					{"Pastrim pas zhvendosjes (hyrje / dalje)", "Pastrim i plotë për shtëpi të reja ose pas zhvendosjes"},
					{"Organizim hapësirash dhe garderobash", "Organizim dhe pastrim i garderobave dhe hapësirave të tjera"},
				},
			},
			{
				Name:        "Pastrime Komerciale / Zyrash",
				Description: "Krijoni një ambient profesional dhe të pastër për punonjësit dhe klientët tuaj.",
				Icon:        "🏢",
				Order:       2,
				Services: []ServiceSeed{
					{"Pastrim i përditshëm ose javor i zyrave", "Pastrim i rregullt ditor ose javor i ambienteve të zyrës"},
					{"Larje xhamash dhe dritaresh", "Larje profesionale e xhamave dhe dritareve të zyrës"},
					{"Dezinfektim i hapësirave të përbashkëta", "Dezinfektim i plotë i hapësirave të përbashkëta"},
					{"Pastrim i tapeteve, dyshemeve dhe mobiljeve", "Pastrim i thellë i tapeteve, dyshemeve dhe mobiljeve të zyrës"},
					{"Pastrim i ambienteve të pritjes dhe sallave të mbledhjeve", "Pastrim i ambienteve të pritjes dhe sallave të mbledhjeve"},
				},
			},
			{
				Name:        "Pastrime Pas Ndërtimit",
				Description: "Heq pluhurin dhe mbeturinat pas punimeve ndërtimore apo rinovuese.",
				Icon:        "🏗️",
				Order:       3,
				Services: []ServiceSeed{
					{"Pastrim i pluhurit, mbetjeve dhe bojës", "Heqje e plotë e pluhurit, mbetjeve dhe bojës pas ndërtimit"},
					{"Larje e dritareve dhe kornizave", "Larje e plotë e dritareve dhe kornizave pas ndërtimit"},
					{"Dezinfektim i plotë pas punimeve", "Dezinfektim i plotë i ambientit pas punimeve ndërtimore"},
					{"Përgatitje e hapësirës për përdorim", "Përgatitje e plotë e hapësirës për përdorim pas ndërtimit"},
				},
			},
			{
				Name:        "Pastrime Speciale",
				Description: "Kujdes i thellë për sipërfaqe dhe pajisje të veçanta.",
				Icon:        "🚗",
				Order:       4,
				Services: []ServiceSeed{
					{"Pastrim profesional i divanëve dhe tapicerive", "Pastrim i thellë i divanëve dhe tapicerive me teknika profesionale"},
					{"Larje tapetesh dhe qilimash", "Larje profesionale e tapeteve dhe qilimave"},
					{"Pastrim me avull ose ozon", "Pastrim i thellë me avull ose ozon për dezinfektim të plotë"},
					{"Pastrim dhe aromatizim i makinave (auto detailing)", "Pastrim dhe aromatizim profesional i makinave"},
				},
			},
			{
				Name:        "Pastrime për Biznese të Veçanta",
				Description: "Ne përshtatim shërbimet tona sipas industrisë suaj.",
				Icon:        "🏨",
				Order:       5,
				Services: []ServiceSeed{
					{"Pastrim hotelesh dhe apartamenteve me qira", "Pastrim profesional për hotele dhe apartamente me qira"},
					{"Pastrim klinikash dhe ambienteve mjekësore", "Pastrim me standarde të larta higjiene për ambiente mjekësore"},
					{"Pastrim restorantesh dhe bareve", "Pastrim profesional për restorante dhe bare"},
					{"Pastrim palestrash dhe qendrave sportive", "Pastrim dhe dezinfektim i palestrave dhe qendrave sportive"},
				},
			},
			{
				Name:        "Pastrime Ekologjike",
				Description: "Kujdes për pastërtinë dhe për mjedisin!",
				Icon:        "🌿",
				Order:       6,
				Services: []ServiceSeed{
					{"Pastrim me produkte natyrale dhe eco-friendly", "Pastrim me produkte natyrale dhe miqësore me mjedisin"},
					{"Pastrim pa kimikate të forta", "Pastrim pa përdorim të kimikateve të forta"},
					{"Aromatizim me esenca natyrale", "Aromatizim i ambientit me esenca natyrale"},
				},
			},
		},
	}
}
