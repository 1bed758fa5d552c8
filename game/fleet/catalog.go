package fleet

// Kind identifies a vessel class with a fixed hull length.
type Kind string

const (
	Carrier    Kind = "carrier"
	Battleship Kind = "battleship"
	Cruiser    Kind = "cruiser"
	Submarine  Kind = "submarine"
	Destroyer  Kind = "destroyer"
)

// Kinds lists every vessel kind in catalog order (longest first).
var Kinds = []Kind{Carrier, Battleship, Cruiser, Submarine, Destroyer}

// Length returns the fixed hull length for the kind, or 0 for an
// unknown kind. The mapping is global and shared by all matches.
func (k Kind) Length() int {
	switch k {
	case Carrier:
		return 5
	case Battleship:
		return 4
	case Cruiser:
		return 3
	case Submarine:
		return 3
	case Destroyer:
		return 2
	default:
		return 0
	}
}

// IsValid reports whether k is one of the five catalog kinds.
func (k Kind) IsValid() bool {
	return k.Length() > 0
}

// Vessel is the descriptive metadata for a single ship in a nation's fleet.
type Vessel struct {
	Name   string `json:"name"`
	Class  string `json:"class,omitempty"`
	Kind   Kind   `json:"kind"`
	Length int    `json:"length"`
}

// DefaultNation is used when a requested nation is not in the catalog.
const DefaultNation = "USA"

// ForNation returns the fleet for the given nation code, falling back to
// the default nation when the code is unknown. The returned slice is a
// copy; callers may not mutate catalog data through it.
func ForNation(nation string) []Vessel {
	fleet, ok := fleets[nation]
	if !ok {
		fleet = fleets[DefaultNation]
	}
	out := make([]Vessel, len(fleet))
	copy(out, fleet)
	return out
}

// Nations returns every nation code present in the catalog.
func Nations() []string {
	out := make([]string, 0, len(fleets))
	for nation := range fleets {
		out = append(out, nation)
	}
	return out
}

var fleets = map[string][]Vessel{
	"USA": {
		{Name: "USS Gerald R. Ford (CVN-78)", Class: "Ford-class", Kind: Carrier, Length: 5},
		{Name: "USS Arleigh Burke (DDG-51)", Class: "Arleigh Burke-class", Kind: Battleship, Length: 4},
		{Name: "USS Ticonderoga (CG-47)", Class: "Ticonderoga-class", Kind: Cruiser, Length: 3},
		{Name: "USS Virginia (SSN-774)", Class: "Virginia-class", Kind: Submarine, Length: 3},
		{Name: "USS Freedom (LCS-1)", Class: "Freedom-class", Kind: Destroyer, Length: 2},
	},
	"UK": {
		{Name: "HMS Queen Elizabeth (R08)", Class: "Queen Elizabeth-class", Kind: Carrier, Length: 5},
		{Name: "HMS Daring (D32)", Class: "Type 45", Kind: Battleship, Length: 4},
		{Name: "HMS Montrose (F236)", Class: "Type 23", Kind: Cruiser, Length: 3},
		{Name: "HMS Astute (S119)", Class: "Astute-class", Kind: Submarine, Length: 3},
		{Name: "HMS Tamar (P233)", Class: "River-class", Kind: Destroyer, Length: 2},
	},
	"France": {
		{Name: "FS Charles de Gaulle (R91)", Class: "Nuclear carrier", Kind: Carrier, Length: 5},
		{Name: "FS Chevalier Paul (D621)", Class: "Horizon-class", Kind: Battleship, Length: 4},
		{Name: "FS Forbin (D620)", Class: "Horizon-class", Kind: Cruiser, Length: 3},
		{Name: "FS Suffren (Q284)", Class: "Barracuda-class", Kind: Submarine, Length: 3},
		{Name: "FS L'Adroit (P725)", Class: "Gowind", Kind: Destroyer, Length: 2},
	},
	"Japan": {
		{Name: "JS Izumo (DDH-183)", Class: "Izumo-class", Kind: Carrier, Length: 5},
		{Name: "JS Maya (DDG-179)", Class: "Maya-class", Kind: Battleship, Length: 4},
		{Name: "JS Akizuki (DD-115)", Class: "Akizuki-class", Kind: Cruiser, Length: 3},
		{Name: "JS Soryu (SS-501)", Class: "Soryu-class", Kind: Submarine, Length: 3},
		{Name: "JS Kumano (FFM-2)", Class: "Mogami-class", Kind: Destroyer, Length: 2},
	},
	"India": {
		{Name: "INS Vikrant (R11)", Class: "Indigenous carrier", Kind: Carrier, Length: 5},
		{Name: "INS Kolkata (D63)", Class: "Kolkata-class", Kind: Battleship, Length: 4},
		{Name: "INS Shivalik (F47)", Class: "Shivalik-class", Kind: Cruiser, Length: 3},
		{Name: "INS Arihant (S2)", Class: "Arihant-class SSBN", Kind: Submarine, Length: 3},
		{Name: "INS Kamorta (P28)", Class: "ASW Corvette", Kind: Destroyer, Length: 2},
	},
	"China": {
		{Name: "CNS Shandong (17)", Class: "Type 002", Kind: Carrier, Length: 5},
		{Name: "CNS Nanchang (101)", Class: "Type 055", Kind: Battleship, Length: 4},
		{Name: "CNS Xi'an (153)", Class: "Type 052C/D", Kind: Cruiser, Length: 3},
		{Name: "Type 093 SSN", Class: "Shang-class", Kind: Submarine, Length: 3},
		{Name: "Type 056A Corvette", Class: "Jiangdao-class", Kind: Destroyer, Length: 2},
	},
	"Russia": {
		{Name: "Admiral Kuznetsov", Class: "Aircraft carrier", Kind: Carrier, Length: 5},
		{Name: "Admiral Gorshkov (454)", Class: "Frigate", Kind: Battleship, Length: 4},
		{Name: "Marshal Ustinov (055)", Class: "Slava-class cruiser", Kind: Cruiser, Length: 3},
		{Name: "Yasen-class SSN (K-560 Severodvinsk)", Class: "Yasen", Kind: Submarine, Length: 3},
		{Name: "Buyan-M Corvette", Class: "Project 21631", Kind: Destroyer, Length: 2},
	},
	"SouthKorea": {
		{Name: "ROKS Dokdo (LPH-6111)", Class: "LPH", Kind: Carrier, Length: 5},
		{Name: "ROKS Sejong the Great (DDG-991)", Class: "KDX-III", Kind: Battleship, Length: 4},
		{Name: "ROKS Daegu (FFG-818)", Class: "Daegu-class", Kind: Cruiser, Length: 3},
		{Name: "ROKS Dosan Ahn Chang-ho (SS-083)", Class: "KSS-III", Kind: Submarine, Length: 3},
		{Name: "PKG-A Patrol", Class: "Patrol Killer", Kind: Destroyer, Length: 2},
	},
	"Italy": {
		{Name: "ITS Cavour (550)", Class: "Carrier", Kind: Carrier, Length: 5},
		{Name: "ITS Andrea Doria (D553)", Class: "Horizon-class", Kind: Battleship, Length: 4},
		{Name: "ITS Carlo Bergamini (F590)", Class: "FREMM", Kind: Cruiser, Length: 3},
		{Name: "ITS Pietro Venuti (S 528)", Class: "Type 212A", Kind: Submarine, Length: 3},
		{Name: "Comandanti-class Patrol", Kind: Destroyer, Length: 2},
	},
	"Spain": {
		{Name: "SPS Juan Carlos I (L61)", Class: "LHD", Kind: Carrier, Length: 5},
		{Name: "SPS Álvaro de Bazán (F101)", Class: "F100", Kind: Battleship, Length: 4},
		{Name: "SPS Méndez Núñez (F104)", Class: "F100", Kind: Cruiser, Length: 3},
		{Name: "S-80 Plus (Isaac Peral)", Class: "S-80", Kind: Submarine, Length: 3},
		{Name: "Meteoro-class OPV", Kind: Destroyer, Length: 2},
	},
	"Germany": {
		{Name: "FGS Bonn (A1413)", Class: "Einsatzgruppenversorger", Kind: Carrier, Length: 5},
		{Name: "FGS Sachsen (F219)", Class: "Sachsen-class", Kind: Battleship, Length: 4},
		{Name: "FGS Baden-Württemberg (F222)", Class: "F125", Kind: Cruiser, Length: 3},
		{Name: "Type 212A Submarine", Class: "U-35", Kind: Submarine, Length: 3},
		{Name: "Braunschweig-class (K130) Corvette", Kind: Destroyer, Length: 2},
	},
	"Australia": {
		{Name: "HMAS Canberra (L02)", Class: "LHD", Kind: Carrier, Length: 5},
		{Name: "HMAS Hobart (DDG 39)", Class: "Hobart-class", Kind: Battleship, Length: 4},
		{Name: "ANZAC-class Frigate (HMAS Parramatta)", Class: "ANZAC", Kind: Cruiser, Length: 3},
		{Name: "Collins-class Submarine (HMAS Rankin)", Class: "Collins", Kind: Submarine, Length: 3},
		{Name: "Armidale-class Patrol Boat", Kind: Destroyer, Length: 2},
	},
	"Canada": {
		{Name: "HMCS Ottawa (FFH 341)", Class: "Halifax-class", Kind: Carrier, Length: 5},
		{Name: "HMCS Halifax", Class: "Halifax-class", Kind: Battleship, Length: 4},
		{Name: "Harry DeWolf-class (AOPS)", Class: "Arctic patrol", Kind: Cruiser, Length: 3},
		{Name: "Victoria-class Submarine (HMCS Victoria)", Kind: Submarine, Length: 3},
		{Name: "Kingston-class MCDV", Kind: Destroyer, Length: 2},
	},
	"Turkey": {
		{Name: "TCG Anadolu (L-400)", Class: "LHD", Kind: Carrier, Length: 5},
		{Name: "TCG Istanbul (F-515)", Class: "I-class", Kind: Battleship, Length: 4},
		{Name: "Gabya-class Frigate (ex-Oliver Hazard Perry)", Kind: Cruiser, Length: 3},
		{Name: "Type 214TN Submarine (Reis-class)", Kind: Submarine, Length: 3},
		{Name: "Ada-class Corvette (TCG Heybeliada)", Kind: Destroyer, Length: 2},
	},
	"Brazil": {
		{Name: "NAM Atlântico (A140)", Class: "Helicopter carrier", Kind: Carrier, Length: 5},
		{Name: "Barroso-class Corvette (V34)", Kind: Battleship, Length: 4},
		{Name: "Tamandaré-class (future)", Kind: Cruiser, Length: 3},
		{Name: "Tupi-class Submarine (S30)", Kind: Submarine, Length: 3},
		{Name: "Macaé-class Patrol", Kind: Destroyer, Length: 2},
	},
}
