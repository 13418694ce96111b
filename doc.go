// Package ytharvest provides a client library for harvesting public YouTube
// data: channel and video metadata, comments, live chat replays and
// auto-generated caption tracks.
//
// Overview
//
// The youtube package carries the Data API v3 operations. A client is built
// from an ordered list of API keys and fails over to the next key when the
// active one runs out of quota:
//
//	client, err := youtube.NewClient([]string{key1, key2}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	it := client.ChannelPlaylists("UCxxxxx")
//	for it.Next() {
//		fmt.Println(it.Value().Title)
//	}
//	if err := it.Err(); err != nil {
//		log.Fatal(err)
//	}
//
// Paginated operations return lazy iterators; pages are fetched as the
// consumer advances, so harvesting a large channel does not buffer it in
// memory.
//
// Records
//
// Every operation emits flat records (Channel, Playlist, Video, Comment)
// whose optional fields are pointers: a nil Views means the platform withheld
// the statistic, not that it was zero. All records render themselves as CSV
// rows through the csvio package.
//
// Collaborators
//
// Operations that need no API key live in their own packages:
//
//   - scrape: channel IDs from channel page URLs
//   - livechat: chat replays of finished live streams
//   - transcript: caption track download and VTT cleanup
//
// The cli directory holds the command-line front end wiring these together;
// see `ytharvest --help`.
package ytharvest
