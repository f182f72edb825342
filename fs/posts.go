// Package fs reads and writes the JSON post files and rendered books that
// move between pipeline steps.
package fs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/casefiles"
)

// jsonIndent is the indentation used for post files.
const jsonIndent = "    "

// ReadPosts reads a JSON array of posts from path.
func ReadPosts(path string) ([]*casefiles.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, casefiles.Errorf(casefiles.ENOTFOUND, "posts file %s does not exist", path)
		}
		return nil, err
	}
	defer f.Close()

	posts, err := DecodePosts(f)
	if err != nil {
		return nil, casefiles.Errorf(casefiles.ErrorCode(err), "%s: %s", path, casefiles.ErrorMessage(err))
	}
	return posts, nil
}

// DecodePosts decodes a JSON array of posts. Every record must be an
// object that passes Post.Validate; the first bad record fails the whole
// read with EINVALID.
func DecodePosts(r io.Reader) ([]*casefiles.Post, error) {
	var records []json.RawMessage
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, casefiles.Errorf(casefiles.EINVALID, "malformed posts file: %v", err)
	}

	posts := make([]*casefiles.Post, 0, len(records))
	for i, record := range records {
		if trimmed := bytes.TrimSpace(record); len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, casefiles.Errorf(casefiles.EINVALID, "record %d is not a post object", i)
		}

		var post casefiles.Post
		if err := json.Unmarshal(record, &post); err != nil {
			return nil, casefiles.Errorf(casefiles.EINVALID, "record %d: %v", i, err)
		}
		if err := post.Validate(); err != nil {
			return nil, casefiles.Errorf(casefiles.EINVALID, "record %d: %s", i, casefiles.ErrorMessage(err))
		}
		posts = append(posts, &post)
	}
	return posts, nil
}

// EncodePosts writes posts as an indented JSON array. A nil slice is
// written as an empty array.
func EncodePosts(w io.Writer, posts []*casefiles.Post) error {
	if posts == nil {
		posts = []*casefiles.Post{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", jsonIndent)
	enc.SetEscapeHTML(false)
	return enc.Encode(posts)
}

// ReadURLs reads post URLs from path, one per line. Blank lines and lines
// starting with '#' are skipped.
func ReadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, casefiles.Errorf(casefiles.ENOTFOUND, "URL list %s does not exist", path)
		}
		return nil, err
	}
	defer f.Close()

	return ParseURLs(f)
}

// ParseURLs reads post URLs from r, one per line.
func ParseURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
