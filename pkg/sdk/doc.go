// Package tagsim recommends similar catalog items by Jaccard similarity of
// their tag sets, in-process.
//
// The catalog is loaded once when the client is created, from memory, a
// parquet file, or a Redis/Valkey copy written by `tagsim import`:
//
//	client, _ := tagsim.New(ctx, tagsim.WithParquet("data/anime.parquet"))
//	defer client.Close()
//
//	recs, _ := client.Recommend(ctx, "Kimi no Na wa.", 5)
//	for _, r := range recs {
//	    fmt.Printf("%-40s %.3f\n", r.Name, r.Score)
//	}
//
// The scoring helpers work without a client:
//
//	tagsim.Similarity(tagsim.NormalizeTags("Action, Comedy"), []string{"Action"}) // 0.5
package tagsim
