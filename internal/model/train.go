package model

// TrainType is a named category of train (express, freight, ...).
// Names are unique.
type TrainType struct {
    ID   uint64 // train_types.id
    Name string // train_types.name
}

// Train describes the rolling stock assigned to journeys.  CargoNum and
// PlacesInCargo define the bookable seat grid: cargos are numbered
// 1..CargoNum and seats 1..PlacesInCargo within each cargo.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name of the train.
//  CargoNum      – number of cargos (cars) in the train.
//  PlacesInCargo – number of seats per cargo.
//  TrainTypeID   – reference to the train's type.
type Train struct {
    ID            uint64 // trains.id
    Name          string // trains.name
    CargoNum      uint32 // trains.cargo_num
    PlacesInCargo uint32 // trains.places_in_cargo
    TrainTypeID   uint64 // trains.train_type_id
}

// Capacity returns the total number of bookable seats on the train.
func (t Train) Capacity() uint32 {
    return t.CargoNum * t.PlacesInCargo
}
