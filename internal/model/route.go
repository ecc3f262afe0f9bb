package model

// Route connects two stations in a fixed direction.  Source and
// destination must differ; the handler layer rejects routes that loop
// back to their origin.
//
// Fields:
//  ID            – primary key identifier.
//  SourceID      – station the route departs from.
//  DestinationID – station the route arrives at.
//  Distance      – length of the route in kilometres.
type Route struct {
    ID            uint64 // routes.id
    SourceID      uint64 // routes.source_id
    DestinationID uint64 // routes.destination_id
    Distance      uint32 // routes.distance
}
