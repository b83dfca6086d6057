package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/listinker/listinker-api/internal/domain/entity"
)

type catalogDepartment struct {
	numbID  int
	name    string
	intDate int
	subs    []string
}

// catalogData is the static marketplace catalog. Sub-category numb_ids
// are assigned sequentially across all departments in listed order.
var catalogData = []catalogDepartment{
	{1, "Mobiles", 30, []string{
		"iPhone", "Mi", "Samsung", "Vivo", "Realme", "Oppo", "One Plus", "Other Mobiles",
		"Motorola", "Infinix", "Nokia", "Google Pixel", "Tecno", "ASUS", "Honor", "Lenovo",
		"Sony", "Huawei", "Micromax", "Lava", "Gionee", "BlackBerry", "HTC", "Intex", "Karbonn",
	}},
	{2, "Mobile Accessories", 30, []string{"Mobile", "Tablets"}},
	{3, "Tablets", 30, []string{"iPads", "Other Tablets", "Samsung"}},
	{4, "Electronics & Appliances", 60, []string{
		"TVs, Video - Audio", "Computers & Laptops", "Kitchen & Other Appliances", "Fridges",
		"Cameras & Lenses", "Washing Machines", "Computer Accessories", "Games & Entertainment",
		"ACs", "Hard Disks, Printers & Monitors",
	}},
	{5, "Properties", 80, []string{
		"House & Villa", "Flats / Apartments", "Independent / Builder Floors", "Farm House",
		"Lands & Plots - For Sale", "Lands & Plots - For Rent",
		"Shops & Offices - For Rent", "PG & Guest Houses", "Shops & Offices - For Sale",
	}},
	{6, "Cars", 70, []string{
		"Maruti Suzuki", "Hyundai", "Mahindra", "Honda", "Tata", "Toyota", "Ford", "Volkswagen",
		"Renault", "Chevrolet", "Skoda", "Mercedes-Benz", "BMW", "Nissan", "Kia", "Datsun", "Fiat",
		"Audi", "Jeep", "MG", "Land Rover", "Mitsubishi", "Volvo", "Jaguar", "Force Motors", "Ashok Leyland",
		"Mini", "Porsche", "Isuzu", "Eicher Polaris", "Ambassador", "Mahindra Renault", "Ssangyong",
		"Lexus", "BYD", "DC", "Opel", "Rolls-Royce", "Premier", "Mazda", "Lamborghini", "Daewoo", "Maserati", "Bentley",
	}},
	{7, "Furniture", 40, []string{
		"Sofa & Dining", "Other Household Items", "Beds & Wardrobes",
		"Home Decor & Garden", "Kids Furniture",
	}},
	{8, "Bikes", 50, []string{
		"Bajaj", "Royal Enfield", "Hero", "Yamaha", "Honda", "TVS", "Hero Honda",
		"Other Brands", "KTM", "Suzuki", "Scooters - Honda", "Scooters - TVS",
		"Scooters - Hero", "Scooters - Other Brands", "Scooters - Suzuki", "Scooters - Bajaj",
		"Scooters - Mahindra", "Bicycles - Other Brands", "Bicycles - Hero", "Bicycles - Hercules",
		"Spare Parts",
	}},
	{9, "Jobs", 50, []string{
		"Other Jobs", "Sales & Marketing", "Delivery & Collection", "Data entry & Back office",
		"BPO & Telecaller", "Cook", "Driver", "Office Assistant", "Receptionist & Front office",
		"Teacher", "Operator & Technician", "Accountant", "Hotel & Travel Executive",
		"IT Engineer & Developer", "Designer",
	}},
	{10, "Commercial Vehicles & Spares", 80, []string{
		"Others", "Trucks", "Modified Jeeps", "Pick-up vans / Pick-up trucks", "Tractors",
		"Taxi Cabs", "Auto-rickshaws & E-rickshaws", "Heavy Machinery", "Buses", "Scrap Cars",
		"Spare Parts", "Wheels & Tyres", "Audio & Other Accessories",
	}},
	{11, "Books, Sports & Hobbies", 30, []string{
		"Gym & Fitness", "Books", "Other Hobbies", "Sports Equipment", "Musical Instruments",
	}},
	{12, "Fashion", 30, []string{"Men", "Women", "Kids"}},
	{13, "Services", 40, []string{
		"Other Services", "Electronics Repair & Services", "Education & Classes",
		"Health & Beauty", "Tours & Travel",
	}},
	{14, "Pets", 30, []string{"Pet Food & Accessories"}},
}

// CatalogCategories returns the static top-level departments.
func CatalogCategories() []entity.Category {
	cats := make([]entity.Category, 0, len(catalogData))
	for _, dep := range catalogData {
		cats = append(cats, entity.Category{NumbID: dep.numbID, Name: dep.name, IntDate: dep.intDate})
	}
	return cats
}

// CatalogSubCategories returns the static sub-categories with their
// globally sequential numb_ids.
func CatalogSubCategories() []entity.SubCategory {
	var subs []entity.SubCategory
	next := 1
	for _, dep := range catalogData {
		for _, name := range dep.subs {
			subs = append(subs, entity.SubCategory{NumbID: next, Name: name, ParentID: dep.numbID})
			next++
		}
	}
	return subs
}

// EnsureCatalog seeds the categories and sub_categories collections
// when they are empty. Already-populated collections are left alone so
// restarts never duplicate the catalog.
func EnsureCatalog(ctx context.Context, db *mongo.Database) error {
	cats := db.Collection(colCategories)
	n, err := cats.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n == 0 {
		docs := make([]any, 0, len(catalogData))
		for _, c := range CatalogCategories() {
			docs = append(docs, c)
		}
		if _, err := cats.InsertMany(ctx, docs); err != nil {
			return err
		}
	}

	subs := db.Collection(colSubCategories)
	n, err = subs.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n == 0 {
		docs := make([]any, 0, 128)
		for _, s := range CatalogSubCategories() {
			docs = append(docs, s)
		}
		if _, err := subs.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	return nil
}
