package reference

// Region represents a region users may live in
type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// City represents a city belonging to a region
type City struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	RegionID int64  `json:"regionId"`
}

// Gender represents a gender users may choose
type Gender struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Status represents a relationship status users may choose
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
