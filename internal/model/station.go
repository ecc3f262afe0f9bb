package model

// Station represents a railway station that routes connect.  Station
// names are unique across the system.  Coordinates are stored as plain
// floats; no geo indexing is performed.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique station name.
//  Latitude  – latitude in decimal degrees.
//  Longitude – longitude in decimal degrees.
type Station struct {
    ID        uint64  // stations.id
    Name      string  // stations.name
    Latitude  float64 // stations.latitude
    Longitude float64 // stations.longitude
}
