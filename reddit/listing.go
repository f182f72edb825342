package reddit

// listing is one element of the comments page response. The first listing
// holds the submission, the second its comments.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []struct {
			Kind string         `json:"kind"`
			Data submissionData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type submissionData struct {
	Title        string `json:"title"`
	Selftext     string `json:"selftext"`
	SelftextHTML string `json:"selftext_html"`
	Permalink    string `json:"permalink"`
}

// submissionKind is the "thing" kind of a link submission.
const submissionKind = "t3"

// submission returns the first submission found in the listings.
func submission(listings []listing) (*submissionData, bool) {
	for _, l := range listings {
		for _, child := range l.Data.Children {
			if child.Kind == submissionKind {
				sub := child.Data
				return &sub, true
			}
		}
	}
	return nil, false
}
