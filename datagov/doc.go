// Package datagov fetches the station-exits dataset from the data.gov.sg
// open-data API: poll for a signed download URL, download the GeoJSON
// collection, flatten one feature per physical exit.
package datagov
