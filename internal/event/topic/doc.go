// Package topic provides hierarchical event topics and wildcard matching.
//
//	buffer.*              matches buffer.saved (not buffer.content.inserted)
//	buffer.**             matches buffer.saved and buffer.content.inserted
//	buffer.content.*      matches every content change
//	**                    matches everything
package topic
