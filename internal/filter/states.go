package filter

import "slices"

// State groups the cities and colleges students can search within
type State struct {
	Name     string   `json:"name"`
	Cities   []string `json:"cities"`
	Colleges []string `json:"colleges"`
}

// States is the location reference table, in display order
var States = []State{
	{
		Name:     "Delhi",
		Cities:   []string{"New Delhi", "North Delhi", "South Delhi"},
		Colleges: []string{
			"DU North Campus",
			"DU South Campus",
			"IIT Delhi",
			"JNU",
		},
	},
	{
		Name:     "Jharkhand",
		Cities:   []string{"Ranchi", "Jamshedpur", "Dhanbad", "Bokaro", "Hazaribagh", "Deoghar", "Giridih", "Ramgarh", "Chaibasa", "Dumka"},
		Colleges: []string{
			"Sarala Birla University",
			"Ranchi University",
			"Birla Institute of Technology (BIT Mesra)",
			"Central University of Jharkhand",
			"National University of Study and Research in Law (NUSRL)",
			"Rajendra Institute of Medical Sciences (RIMS)",
			"St. Xavier’s College, Ranchi",
			"Amity University, Ranchi",
			"ICFAI University, Jharkhand",
			"Yogoda Satsanga Mahavidyalaya, Ranchi",
		},
	},
	{
		Name:     "Bihar",
		Cities:   []string{"Patna", "Gaya", "Muzaffarpur", "Bhagalpur", "Darbhanga", "Purnia", "Ara", "Begusarai", "Katihar", "Munger"},
		Colleges: []string{
			"Patna University",
			"Magadh University",
			"Lalit Narayan Mithila University",
			"Tilka Manjhi Bhagalpur University",
			"BRA Bihar University",
			"Nalanda Open University",
			"Purnea University",
			"Veer Kunwar Singh University",
			"IIT Patna",
			"NIT Patna",
		},
	},
	{
		Name:     "Uttar Pradesh",
		Cities:   []string{"Lucknow", "Kanpur", "Varanasi", "Agra", "Prayagraj", "Meerut", "Ghaziabad", "Noida", "Gorakhpur", "Aligarh"},
		Colleges: []string{
			"Banaras Hindu University",
			"University of Lucknow",
			"Aligarh Muslim University",
			"IIT Kanpur",
			"Allahabad University",
			"Dr. APJ Abdul Kalam Technical University",
			"Amity University Noida",
			"CCS University Meerut",
			"Deen Dayal Upadhyay Gorakhpur University",
			"Sharda University",
		},
	},
	{
		Name:     "West Bengal",
		Cities:   []string{"Kolkata", "Howrah", "Durgapur", "Asansol", "Siliguri", "Darjeeling", "Malda", "Kharagpur", "Haldia", "Bardhaman"},
		Colleges: []string{
			"University of Calcutta",
			"Jadavpur University",
			"IIT Kharagpur",
			"Presidency University",
			"University of Burdwan",
			"University of North Bengal",
			"Kalyani University",
			"Visva-Bharati University",
			"NIT Durgapur",
			"Techno India University",
		},
	},
	{
		Name:     "Maharashtra",
		Cities:   []string{"Mumbai", "Pune", "Nagpur", "Nashik", "Thane", "Aurangabad", "Solapur", "Kolhapur", "Amravati", "Nanded"},
		Colleges: []string{
			"University of Mumbai",
			"Savitribai Phule Pune University",
			"Nagpur University",
			"Shivaji University",
			"Solapur University",
			"SNDT Women’s University",
			"Tata Institute of Social Sciences",
			"IIT Bombay",
			"NMIMS University",
			"Bharati Vidyapeeth University",
		},
	},
	{
		Name:     "Tamil Nadu",
		Cities:   []string{"Chennai", "Coimbatore", "Madurai", "Salem", "Tiruchirappalli", "Vellore", "Erode", "Thoothukudi", "Tirunelveli", "Kanchipuram"},
		Colleges: []string{
			"University of Madras",
			"Anna University",
			"Bharathiar University",
			"Madurai Kamaraj University",
			"Periyar University",
			"NIT Trichy",
			"VIT University",
			"SRM Institute of Science and Technology",
			"SASTRA University",
			"Manonmaniam Sundaranar University",
		},
	},
	{
		Name:     "Karnataka",
		Cities:   []string{"Bengaluru", "Mysuru", "Mangaluru", "Hubballi", "Belagavi", "Shivamogga", "Ballari", "Davanagere", "Udupi", "Tumakuru"},
		Colleges: []string{
			"Bangalore University",
			"University of Mysore",
			"NITK Surathkal",
			"Manipal Academy of Higher Education",
			"Kuvempu University",
			"Visvesvaraya Technological University",
			"Christ University",
			"Jain University",
			"Rani Channamma University",
			"Tumkur University",
		},
	},
	{
		Name:     "Rajasthan",
		Cities:   []string{"Jaipur", "Jodhpur", "Udaipur", "Kota", "Ajmer", "Bikaner", "Alwar", "Bharatpur", "Sikar", "Pali"},
		Colleges: []string{
			"University of Rajasthan",
			"Jai Narain Vyas University",
			"Mohanlal Sukhadia University",
			"University of Kota",
			"Bikaner Technical University",
			"Rajasthan Technical University",
			"Amity University Jaipur",
			"JECRC University",
			"Mody University",
			"Central University of Rajasthan",
		},
	},
	{
		Name:     "Gujarat",
		Cities:   []string{"Ahmedabad", "Surat", "Vadodara", "Rajkot", "Bhavnagar", "Jamnagar", "Junagadh", "Gandhinagar", "Anand", "Mehsana"},
		Colleges: []string{
			"Gujarat University",
			"Sardar Patel University",
			"Maharaja Sayajirao University",
			"Gujarat Technological University",
			"Nirma University",
			"Pandit Deendayal Energy University",
			"Charotar University of Science and Technology",
			"Ahmedabad University",
			"Veer Narmad South Gujarat University",
			"Ganpat University",
		},
	},
	{
		Name:     "Madhya Pradesh",
		Cities:   []string{"Bhopal", "Indore", "Gwalior", "Jabalpur", "Ujjain", "Sagar", "Satna", "Rewa", "Ratlam", "Chhindwara"},
		Colleges: []string{
			"Devi Ahilya Vishwavidyalaya",
			"Barkatullah University",
			"Jiwaji University",
			"Rani Durgavati University",
			"Vikram University",
			"Dr. Harisingh Gour University",
			"Rajiv Gandhi Proudyogiki Vishwavidyalaya",
			"MANIT Bhopal",
			"Amity University Gwalior",
			"ITM University Gwalior",
		},
	},
}

// FindState returns the state named name
func FindState(name string) (State, bool) {
	for _, s := range States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

// CitiesOf lists the cities of a state, or nil for an unknown state
func CitiesOf(state string) []string {
	s, _ := FindState(state)
	return s.Cities
}

// CollegesOf lists the colleges of a state, or nil for an unknown state
func CollegesOf(state string) []string {
	s, _ := FindState(state)
	return s.Colleges
}

// ValidLocation reports whether city and college belong to state.
// Locations outside the reference table are accepted as given.
func ValidLocation(state, city, college string) (cityOK, collegeOK bool) {
	s, ok := FindState(state)
	if !ok {
		return true, true
	}
	return slices.Contains(s.Cities, city), slices.Contains(s.Colleges, college)
}
