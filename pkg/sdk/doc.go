// Package partscout provides a Go client for the partscout store discovery
// service: given an appliance part and a location, it returns nearby retail
// stores ranked by the likelihood of stocking that part.
//
//	client := partscout.New("https://api.partscout.example",
//	    partscout.WithAPIKey(os.Getenv("PARTSCOUT_API_KEY")),
//	)
//	resp, err := client.SearchStores(ctx, partscout.SearchRequest{
//	    Part:             partscout.Part{Name: "door gasket", Category: "refrigerator"},
//	    PostalCode:       "90012",
//	    MaxDistanceMiles: 10,
//	})
//
// Every store in the response is guaranteed to be within the requested
// distance. When live data sources are down the service returns synthetic
// estimates and sets Degraded on the response.
package partscout
