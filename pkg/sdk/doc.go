// Package solrdesk embeds the search desk in a Go program: multi-collection
// cursor-paginated search, the translations catalog and per-profile
// preferences, without going through the BFF HTTP API.
//
//	client, _ := solrdesk.New(ctx, solrdesk.WithUpstream("http://localhost:8080"))
//	defer client.Close()
//
//	s := client.NewSearch("default")
//	snap, _ := s.Search(ctx, "kafka", "articles", "products")
//	more, _ := s.LoadMore(ctx, "articles")
//	page, _ := s.Page("articles", 2)
//
// Preferences are kept in memory unless WithRedis or WithValkey is given.
package solrdesk
