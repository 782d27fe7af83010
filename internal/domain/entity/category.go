package entity

const (
	CategoryVehicles           = "Vehicles"
	CategoryPropertyRentals    = "Property Rentals"
	CategoryApparel            = "Apparel"
	CategoryElectronics        = "Electronics"
	CategoryEntertainment      = "Entertainment"
	CategoryFamily             = "Family"
	CategoryFreeStuff          = "Free Stuff"
	CategoryGardenOutdoor      = "Garden & Outdoor"
	CategoryHobbies            = "Hobbies"
	CategoryHomeGoods          = "Home Goods"
	CategoryHomeImprovement    = "Home Improvement"
	CategoryHomeSales          = "Home Sales"
	CategoryMusicalInstruments = "Musical Instruments"
	CategoryOfficeSupplies     = "Office Supplies"
	CategoryPetSupplies        = "Pet Supplies"
	CategorySportingGoods      = "Sporting Goods"
	CategoryToysGames          = "Toys & Games"
)

// Categories lists every category in sidebar order.
func Categories() []string {
	return []string{
		CategoryVehicles,
		CategoryPropertyRentals,
		CategoryApparel,
		CategoryElectronics,
		CategoryEntertainment,
		CategoryFamily,
		CategoryFreeStuff,
		CategoryGardenOutdoor,
		CategoryHobbies,
		CategoryHomeGoods,
		CategoryHomeImprovement,
		CategoryHomeSales,
		CategoryMusicalInstruments,
		CategoryOfficeSupplies,
		CategoryPetSupplies,
		CategorySportingGoods,
		CategoryToysGames,
	}
}

func IsCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}
