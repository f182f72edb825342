package casefiles

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// storyLinkRe matches a Markdown link token. Dot does not cross newlines,
// so a line holding several links yields one match ending at its last link.
var storyLinkRe = regexp.MustCompile(`\[.*\]\(.*\)`)

// storyStartSkip covers the blank line separating the navigation links
// from the first paragraph.
const storyStartSkip = len("\n\n")

// storyEndMarkers are checked in priority order. The first one present in
// the second half of a body wins, regardless of position.
var storyEndMarkers = []string{
	"-Secrets",
	"EDIT:",
	"Edit:",
	"Continued in [part",
	"Concluded in [Part",
	"[Part",
}

// FindStoryStart returns the offset at which the narrative begins.
//
// Only the first half of the body is scanned so that links near the end
// of the story are never mistaken for navigation. When the scanned half
// contains links, the story starts after the last one and its trailing
// blank line. Otherwise it starts at 0.
func FindStoryStart(body string) int {
	window := body[:midpoint(body)]

	matches := storyLinkRe.FindAllStringIndex(window, -1)
	if len(matches) == 0 {
		return 0
	}

	start := matches[len(matches)-1][1] + storyStartSkip
	return min(start, len(body))
}

// FindStoryEnd returns the offset at which the narrative ends.
//
// Only the second half of the body is scanned. The result is the start of
// the highest priority end marker found there, or len(body) if none is.
func FindStoryEnd(body string) int {
	offset := midpoint(body)
	window := body[offset:]

	for _, marker := range storyEndMarkers {
		if i := strings.Index(window, marker); i != -1 {
			return offset + i
		}
	}
	return len(body)
}

// midpoint returns the byte offset of the middle character of body.
// Halves are measured in characters so that multibyte quotes and emoji
// do not shift the split.
func midpoint(body string) int {
	half := utf8.RuneCountInString(body) / 2
	for i := range body {
		if half == 0 {
			return i
		}
		half--
	}
	return len(body)
}

// ExtractStory returns the narrative part of a raw post body with
// surrounding spaces and line breaks removed.
func ExtractStory(body string) string {
	start := FindStoryStart(body)
	end := FindStoryEnd(body)
	if start >= end {
		return ""
	}
	return strings.Trim(body[start:end], " \r\n")
}

// ExtractPost returns a copy of the post with its body reduced to the story.
func ExtractPost(post *Post) *Post {
	return &Post{
		URL:   post.URL,
		Title: post.Title,
		Body:  ExtractStory(post.Body),
	}
}

// ExtractPosts applies ExtractPost to every post, preserving order.
func ExtractPosts(posts []*Post) []*Post {
	extracted := make([]*Post, 0, len(posts))
	for _, post := range posts {
		extracted = append(extracted, ExtractPost(post))
	}
	return extracted
}
