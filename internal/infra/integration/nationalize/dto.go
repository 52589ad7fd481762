package nationalize

// CountryProbability is one ranked candidate in the oracle's response.
type CountryProbability struct {
	CountryID   string  `json:"country_id"`
	Probability float64 `json:"probability"`
}

type lookupResponse struct {
	Count   int                  `json:"count"`
	Name    string               `json:"name"`
	Country []CountryProbability `json:"country"`
}
