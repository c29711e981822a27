package bridge

import "bridges/internal/types"

func threeBridgesRaw() [][]string {
	return [][]string{
		{"1 -  32/", "Highway 24 Underpass at Highway 403", "403", "43.167233",
			"-80.275567", "1965", "2014", "2009", "4",
			"Total=64  (1)=12;(2)=19;(3)=21;(4)=12;", "65", "04/13/2012", "72.3", "",
			"72.3", "", "69.5", "", "70", "", "70.3", "", "70.5", "", "70.7", "72.9",
			""},
		{"1 -  43/", "WEST STREET UNDERPASS", "403", "43.164531", "-80.251582",
			"1963", "2014", "2007", "4",
			"Total=60.4  (1)=12.2;(2)=18;(3)=18;(4)=12.2;", "61", "04/13/2012",
			"71.5", "", "71.5", "", "68.1", "", "69", "", "69.4", "", "69.4", "",
			"70.3", "73.3", ""},
		{"2 -   4/", "STOKES RIVER BRIDGE", "6", "45.036739", "-81.33579", "1958",
			"2013", "", "1", "Total=16  (1)=16;", "18.4", "08/28/2013", "85.1",
			"85.1", "", "67.8", "", "67.4", "", "69.2", "70", "70.5", "", "75.1", "",
			"90.1", ""},
	}
}

func threeBridges() []*types.Bridge {
	return []*types.Bridge{
		{
			ID: 1, Name: "Highway 24 Underpass at Highway 403", Highway: "403",
			Latitude: 43.167233, Longitude: -80.275567,
			YearBuilt: "1965", LastMajorRehab: "2014", LastMinorRehab: "2009",
			SpanCount: 4, SpanLengths: []float64{12.0, 19.0, 21.0, 12.0}, TotalLength: 65.0,
			LastInspected: "04/13/2012",
			BCIHistory:    []float64{72.3, 69.5, 70.0, 70.3, 70.5, 70.7, 72.9},
		},
		{
			ID: 2, Name: "WEST STREET UNDERPASS", Highway: "403",
			Latitude: 43.164531, Longitude: -80.251582,
			YearBuilt: "1963", LastMajorRehab: "2014", LastMinorRehab: "2007",
			SpanCount: 4, SpanLengths: []float64{12.2, 18.0, 18.0, 12.2}, TotalLength: 61.0,
			LastInspected: "04/13/2012",
			BCIHistory:    []float64{71.5, 68.1, 69.0, 69.4, 69.4, 70.3, 73.3},
		},
		{
			ID: 3, Name: "STOKES RIVER BRIDGE", Highway: "6",
			Latitude: 45.036739, Longitude: -81.33579,
			YearBuilt: "1958", LastMajorRehab: "2013", LastMinorRehab: "",
			SpanCount: 1, SpanLengths: []float64{16.0}, TotalLength: 18.4,
			LastInspected: "08/28/2013",
			BCIHistory:    []float64{85.1, 67.8, 67.4, 69.2, 70.0, 70.5, 75.1, 90.1},
		},
	}
}
