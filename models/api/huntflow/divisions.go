package hfapimodels

import "encoding/json"

type DivisionList struct {
	Items []Division `json:"items"`
}

type Division struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Parent  *int            `json:"parent"`
	Lft     *int            `json:"lft"`
	Rgt     *int            `json:"rgt"`
	Foreign *string         `json:"foreign"`
	Removed *string         `json:"removed"`
	Active  bool            `json:"active"`
	Meta    json.RawMessage `json:"meta"`
	Deep    int             `json:"deep"`
	Order   int             `json:"order"`
}
