package seeders

var locationsData = []struct {
	Name          string
	Address       string
	ContactNumber string
}{
	{Name: "City General Hospital", Address: "12 Harbor Road", ContactNumber: "+992900000001"},
	{Name: "St. Mary's Medical Center", Address: "48 Hillside Avenue", ContactNumber: "+992900000002"},
}

var categoriesData = []struct {
	Name        string
	Description string
	Color       string
	Icon        string
}{
	{Name: "Imaging", Description: "X-ray, MRI, CT and ultrasound machines", Color: "#3b82f6", Icon: "scan"},
	{Name: "Life Support", Description: "Ventilators and anesthesia machines", Color: "#ef4444", Icon: "heart-pulse"},
	{Name: "Monitoring", Description: "Patient monitors and telemetry", Color: "#22c55e", Icon: "activity"},
	{Name: "Laboratory", Description: "Analyzers and centrifuges", Color: "#a855f7", Icon: "flask"},
	{Name: "Surgical", Description: "Operating theatre equipment", Color: "#f59e0b", Icon: "scissors"},
}

var equipmentData = []struct {
	EquipmentCode string
	Name          string
	Category      string
	Location      string
	Manufacturer  string
	ModelNumber   string
}{
	{EquipmentCode: "EQ-XR-001", Name: "X-Ray Machine", Category: "Imaging", Location: "City General Hospital", Manufacturer: "Siemens", ModelNumber: "Ysio Max"},
	{EquipmentCode: "EQ-VT-001", Name: "Ventilator", Category: "Life Support", Location: "City General Hospital", Manufacturer: "Dräger", ModelNumber: "Evita V300"},
	{EquipmentCode: "EQ-PM-001", Name: "Patient Monitor", Category: "Monitoring", Location: "City General Hospital", Manufacturer: "Philips", ModelNumber: "IntelliVue MX450"},
	{EquipmentCode: "EQ-US-001", Name: "Ultrasound Scanner", Category: "Imaging", Location: "St. Mary's Medical Center", Manufacturer: "GE", ModelNumber: "Voluson E8"},
	{EquipmentCode: "EQ-AN-001", Name: "Anesthesia Machine", Category: "Life Support", Location: "St. Mary's Medical Center", Manufacturer: "Dräger", ModelNumber: "Atlan A350"},
	{EquipmentCode: "EQ-CF-001", Name: "Centrifuge", Category: "Laboratory", Location: "St. Mary's Medical Center", Manufacturer: "Eppendorf", ModelNumber: "5910 Ri"},
}
