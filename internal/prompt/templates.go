// Package prompt holds the fixed analysis instruction templates per category.
package prompt

import "selene/internal/models"

// templates maps each analysis category to its base instruction text.
// Templates are static; there is no runtime mutation.
var templates = map[string]string{
	models.ComponentVerification: `Analyze the schematic components against the provided datasheet:
1. Verify component values match datasheet recommendations
   - Check resistor values for pull-ups, pull-downs, and biasing
   - Verify capacitor values for decoupling, filtering, and timing
   - Confirm inductor/transformer specifications if present

2. Check pin configurations are correct
   - Verify all pins are connected according to function
   - Identify any unconnected pins that require termination
   - Check for proper power and ground connections

3. Identify missing components mentioned in datasheet
   - Look for required external components (crystals, capacitors, etc.)
   - Check for recommended protection circuits
   - Verify presence of decoupling capacitors

4. Validate power supply requirements
   - Confirm voltage levels match specifications
   - Check current capacity is adequate
   - Verify proper power sequencing if required

Please provide specific findings with component designators (R1, C1, etc.) and reference relevant datasheet sections.`,

	models.PinConfigurationCheck: `Review pin connections against datasheet specifications:
1. Check all pin assignments are correct
   - Verify each pin number matches its intended function
   - Confirm no pins are swapped or misconnected
   - Check differential pairs are properly routed

2. Verify required pull-ups/pull-downs are present
   - Identify pins requiring pull-up resistors
   - Check for pins needing pull-down resistors
   - Verify resistor values match recommendations

3. Validate power and ground connections
   - Ensure all power pins are connected
   - Verify all ground pins are connected
   - Check for proper power supply decoupling

4. Check for unused pins handling
   - Identify floating inputs that should be tied
   - Verify unused outputs are left unconnected
   - Check special pins (test, mode selection, etc.)

Reference the datasheet pin configuration table and provide specific pin numbers in your findings.`,

	models.PowerSupplyAnalysis: `Analyze power supply design using datasheet specifications:
1. Verify voltage levels match datasheet requirements
   - Check input voltage range compliance
   - Verify regulated output voltages
   - Confirm voltage tolerances are met

2. Check decoupling capacitor values and placement
   - Verify capacitor values match recommendations
   - Check for proper capacitor types (ceramic, electrolytic)
   - Confirm placement near power pins

3. Validate current capacity requirements
   - Calculate total current consumption
   - Verify regulator current rating is adequate
   - Check for proper heat dissipation

4. Review power sequencing if applicable
   - Verify correct power-up sequence
   - Check for required delays between rails
   - Confirm power-good signals if used

Compare against datasheet electrical characteristics and reference application notes.`,

	models.DesignCompliance: `Check overall design compliance with datasheet recommendations:
1. Compare to reference designs in datasheet
   - Identify deviations from recommended circuits
   - Check if modifications are acceptable
   - Verify critical circuit sections match

2. Verify all recommended external components
   - Check for presence of all suggested components
   - Verify component values and tolerances
   - Confirm component placement guidelines

3. Check thermal considerations
   - Verify adequate copper area for heat dissipation
   - Check for thermal vias if recommended
   - Confirm ambient temperature specifications

4. Validate application circuit examples
   - Compare against typical application circuits
   - Verify any additional features are properly implemented
   - Check for application-specific requirements

Provide detailed comparison with datasheet recommendations and note any concerns.`,

	models.MissingComponents: `Identify components missing from schematic but required by datasheet:
1. Check for missing protection circuits
   - ESD protection diodes
   - Overvoltage protection
   - Reverse polarity protection
   - Current limiting resistors

2. Verify all required external components
   - Crystal/oscillator and load capacitors
   - Reset circuit components
   - Bias resistors and capacitors
   - Compensation components

3. Check for missing filter components
   - Input/output filter capacitors
   - EMI suppression components
   - Power supply filters
   - Signal conditioning components

4. Validate crystal/clock circuitry
   - Crystal and load capacitors
   - Feedback resistor if required
   - Clock buffer/driver components

List each missing component with its purpose and datasheet reference.`,

	models.CustomQuery: `Analyze the schematic based on the user's specific question.

Consider the following aspects if relevant:
- Component values and ratings
- Pin connections and signal routing
- Power supply design
- Grounding and shielding
- Signal integrity
- Thermal management
- EMC/EMI considerations
- Safety and protection circuits

Provide a detailed response addressing the user's query with specific references to components and connections visible in the schematic.`,
}

// Template returns the instruction template for category. Unrecognized
// categories fall back to the Custom Query template; this is the defined
// behavior, not an error.
func Template(category string) string {
	if t, ok := templates[category]; ok {
		return t
	}
	return templates[models.CustomQuery]
}
