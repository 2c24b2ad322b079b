// Package beauty embeds the beauty product recommender in a Go program.
//
// A Client ranks up to three product catalogs (skincare, cosmetic, makeup),
// classifies skin from sampled face pixels and picks a curated product bundle
// for a skin profile. Catalogs come from memory, CSV or Parquet files, or a
// Redis/Valkey catalog store filled by beautyctl import.
//
// # Ranking catalogs
//
//	client, _ := beauty.New(ctx,
//	    beauty.WithCatalogFile(beauty.Skincare, "data/skincare.csv"),
//	    beauty.WithCatalog(beauty.Cosmetic, products...),
//	)
//	defer client.Close()
//
//	res, _ := client.Recommend(ctx, beauty.Skincare, beauty.Query{
//	    SkinType: "oily",
//	    MaxPrice: beauty.Bound(150000),
//	    Text:     "acne brightening",
//	})
//	for _, h := range res.Hits {
//	    fmt.Println(h.Score, h.Product.Name)
//	}
//
// Without Text the filtered products are ordered by rating. Constraints a
// catalog does not declare, or bounds that are not valid numbers, are left
// out of filtering and listed in Result.Ignored.
//
// # Skin analysis
//
//	analysis, _ := client.Analyze(ctx, []beauty.Pixel{{220, 180, 160}, {210, 170, 150}})
//	fmt.Println(analysis.Type, analysis.Tone, analysis.Acne)
//	fmt.Println(analysis.Recommendations.General.Serum)
//
//	bundle, _ := client.Match(ctx, beauty.SkinProfile{Type: "dry", Tone: "4", Acne: "Low"})
//
// # Catalog store
//
//	client, _ := beauty.New(ctx,
//	    beauty.WithValkey("localhost:6379", ""),
//	    beauty.WithStoredCatalog(beauty.Makeup),
//	)
//	_ = client.Reload(ctx, beauty.Makeup)
package beauty
