// Package casefiles compiles serialized Reddit stories into a single
// e-book manuscript. It follows the "next part" links between posts,
// strips navigation links and editorial footers from each post body,
// and renders the chapters as one Markdown document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, reddit/, goquery/).
package casefiles
