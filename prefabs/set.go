package prefabs

// Set is every prefab the arena reads.
type Set struct {
	Alien     AlienSpec
	Ship      ShipSpec
	Asteroids AsteroidFieldSpec
}

// LoadSet reads all prefabs from src. The first failure aborts the load.
func LoadSet(src Source) (Set, error) {
	var set Set
	var err error
	if set.Alien, err = LoadSpecFrom[AlienSpec](src, AlienFile); err != nil {
		return Set{}, err
	}
	if set.Ship, err = LoadSpecFrom[ShipSpec](src, ShipFile); err != nil {
		return Set{}, err
	}
	if set.Asteroids, err = LoadSpecFrom[AsteroidFieldSpec](src, AsteroidsFile); err != nil {
		return Set{}, err
	}
	return set, nil
}
