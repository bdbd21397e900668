package catalog

import "github.com/glasspack/api/internal/enum"

// Static reference tables. The first record of each table is the N/A
// placeholder expected by the form defaults; Filter hides it from
// suggestions.

var glassCatalog = []Entry{
	{Name: enum.Sentinel},
	{Name: "GPR-15-RND", NeckSize: "13mm", Weight: "15"},
	{Name: "GPR-30-RND", NeckSize: "18mm", Weight: "30"},
	{Name: "GPR-30-SQR", NeckSize: "18mm", Weight: "30"},
	{Name: "GPR-50-RND", NeckSize: "20mm", Weight: "50"},
	{Name: "GPR-50-OVL", NeckSize: "20mm", Weight: "50"},
	{Name: "GPR-100-RND", NeckSize: "24mm", Weight: "100"},
	{Name: "GPR-100-SQR", NeckSize: "24mm", Weight: "100"},
	{Name: "GPR-100-FLT", NeckSize: "24mm", Weight: "100"},
	{Name: "GPR-200-RND", NeckSize: "28mm", Weight: "200"},
	{Name: "GPR-250-BST", NeckSize: "28mm", Weight: "250"},
	{Name: "GPR-500-RND", NeckSize: "28mm", Weight: "500"},
	{Name: "GDR-10-DRP", NeckSize: "18mm", Weight: "10"},
	{Name: "GDR-15-DRP", NeckSize: "18mm", Weight: "15"},
	{Name: "GDR-30-DRP", NeckSize: "18mm", Weight: "30"},
	{Name: "GJR-50-JAR", NeckSize: "43mm", Weight: "50"},
	{Name: "GJR-100-JAR", NeckSize: "53mm", Weight: "100"},
}

var capCatalog = []Entry{
	{Name: enum.Sentinel},
	{Name: "CP-ALU-13", NeckSize: "13mm"},
	{Name: "CP-ALU-18", NeckSize: "18mm"},
	{Name: "CP-ALU-20", NeckSize: "20mm"},
	{Name: "CP-ALU-24", NeckSize: "24mm"},
	{Name: "CP-PP-18", NeckSize: "18mm"},
	{Name: "CP-PP-20", NeckSize: "20mm"},
	{Name: "CP-PP-24", NeckSize: "24mm"},
	{Name: "CP-PP-28", NeckSize: "28mm"},
	{Name: "CP-WD-18", NeckSize: "18mm"},
	{Name: "CP-WD-24", NeckSize: "24mm"},
	{Name: "CP-DRP-18", NeckSize: "18mm"},
	{Name: "CP-JAR-43", NeckSize: "43mm"},
	{Name: "CP-JAR-53", NeckSize: "53mm"},
}

var boxCatalog = []Entry{
	{Name: enum.Sentinel},
	{Name: "BX-RGD-SML"},
	{Name: "BX-RGD-MED"},
	{Name: "BX-RGD-LRG"},
	{Name: "BX-FLD-SML"},
	{Name: "BX-FLD-MED"},
	{Name: "BX-FLD-LRG"},
	{Name: "BX-KRF-STD"},
	{Name: "BX-KRF-PRM"},
	{Name: "BX-MAG-GFT"},
	{Name: "BX-SLV-STD"},
}

var pumpCatalog = []Entry{
	{Name: enum.Sentinel},
	{Name: "PM-LTN-18"},
	{Name: "PM-LTN-20"},
	{Name: "PM-LTN-24"},
	{Name: "PM-SPR-18"},
	{Name: "PM-SPR-20"},
	{Name: "PM-SPR-24"},
	{Name: "PM-MST-18"},
	{Name: "PM-MST-20"},
	{Name: "PM-TRG-28"},
	{Name: "PM-FOM-43"},
}
