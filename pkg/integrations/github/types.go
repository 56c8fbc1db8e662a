package github

// Record is a single issue or pull request exactly as the API returned it.
// Fields are not interpreted.
type Record = map[string]any

// ReadmeResponse is the body of GET /repos/{owner}/{name}/readme.
type ReadmeResponse struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int    `json:"size"`
	Encoding    string `json:"encoding"` // "base64" for every README GitHub serves
	Content     string `json:"content"`  // Base64, wrapped with newlines every 60 columns
	HTMLURL     string `json:"html_url"`
	DownloadURL string `json:"download_url"`
}
