// Package sdk provides a Go client for the paperfind search API.
//
//	client, _ := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	resp, _ := client.Search(ctx, "diabetes care", sdk.SearchParams{
//	    Year: 2024,
//	    Sort: "rating",
//	})
//	for _, item := range resp.Items {
//	    fmt.Println(item.Title, item.Score)
//	}
package sdk
