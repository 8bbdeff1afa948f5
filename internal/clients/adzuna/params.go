package adzuna

import (
	"fmt"
	"net/url"
	"strconv"
)

const maxResultsPerPage = 50

type SearchParameters struct {
	CountryCode    string
	What           string
	ResultsPerPage int
}

func (s SearchParameters) Validate() error {

	if len(s.CountryCode) != 2 {
		return fmt.Errorf("country code must have two letters, got %q", s.CountryCode)
	}

	if s.ResultsPerPage < 1 || s.ResultsPerPage > maxResultsPerPage {
		return fmt.Errorf("results per page must be between 1 and %d", maxResultsPerPage)
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("results_per_page", strconv.Itoa(s.ResultsPerPage))

	if s.What != "" {
		params.Add("what", s.What)
	}

	return params
}
