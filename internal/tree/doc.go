// Package tree models source as token trees: identifiers, integer and other
// literals, single punctuation characters with joint/alone spacing, and
// delimited groups. Every token keeps its source span and leading trivia.
package tree
