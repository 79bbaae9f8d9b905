package exposure

// Built-in scales. Shutter speeds run from slowest to fastest, apertures and
// ISO values ascend.
var defaultTables = map[Axis]map[Granularity][]string{
	Shutter: {
		Full: {
			`30"`, `15"`, `8"`, `4"`, `2"`, `1"`,
			"1/2", "1/4", "1/8", "1/15", "1/30", "1/60", "1/125",
			"1/250", "1/500", "1/1000", "1/2000", "1/4000", "1/8000",
		},
		Half: {
			`30"`, `20"`, `15"`, `10"`, `8"`, `6"`, `4"`, `3"`, `2"`, `1.5"`, `1"`, `0.7"`,
			"1/2", "1/3", "1/4", "1/6", "1/8", "1/10", "1/15", "1/20", "1/30", "1/45",
			"1/60", "1/90", "1/125", "1/180", "1/250", "1/350", "1/500", "1/750",
			"1/1000", "1/1500", "1/2000", "1/3000", "1/4000", "1/6000", "1/8000",
		},
		Third: {
			`30"`, `25"`, `20"`, `15"`, `13"`, `10"`, `8"`, `6"`, `5"`, `4"`,
			`3.2"`, `2.5"`, `2"`, `1.6"`, `1.3"`, `1"`, `0.8"`, `0.6"`, "1/2", `0.4"`, `0.3"`,
			"1/4", "1/5", "1/6", "1/8", "1/10", "1/13", "1/15", "1/20", "1/25",
			"1/30", "1/40", "1/50", "1/60", "1/80", "1/100", "1/125", "1/160",
			"1/200", "1/250", "1/320", "1/400", "1/500", "1/640", "1/800",
			"1/1000", "1/1250", "1/1600", "1/2000", "1/2500", "1/3200",
			"1/4000", "1/5000", "1/6400", "1/8000",
		},
	},
	Aperture: {
		Full: {
			"f/1", "f/1.4", "f/2", "f/2.8", "f/4", "f/5.6",
			"f/8", "f/11", "f/16", "f/22", "f/32",
		},
		Half: {
			"f/1", "f/1.2", "f/1.4", "f/1.7", "f/2", "f/2.4", "f/2.8",
			"f/3.3", "f/4", "f/4.8", "f/5.6", "f/6.7", "f/8", "f/9.5",
			"f/11", "f/13", "f/16", "f/19", "f/22", "f/27", "f/32",
		},
		Third: {
			"f/1", "f/1.1", "f/1.2", "f/1.4", "f/1.6", "f/1.8", "f/2",
			"f/2.2", "f/2.5", "f/2.8", "f/3.2", "f/3.5", "f/4", "f/4.5",
			"f/5", "f/5.6", "f/6.3", "f/7.1", "f/8", "f/9", "f/10",
			"f/11", "f/13", "f/14", "f/16", "f/18", "f/20", "f/22",
			"f/25", "f/29", "f/32",
		},
	},
	ISO: {
		Full: {
			"100", "200", "400", "800", "1600", "3200", "6400", "12800", "25600",
		},
		Half: {
			"100", "140", "200", "280", "400", "560", "800", "1100", "1600",
			"2200", "3200", "4500", "6400", "9000", "12800", "18000", "25600",
		},
		Third: {
			"100", "125", "160", "200", "250", "320", "400", "500", "640",
			"800", "1000", "1250", "1600", "2000", "2500", "3200", "4000",
			"5000", "6400", "8000", "10000", "12800", "16000", "20000", "25600",
		},
	},
}
