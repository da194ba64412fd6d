package sample

// Each topic holds ten definitional sentences. Every sentence names its
// subject before the verb so that all question types can be built from it.
var bank = []topic{
	{
		Name: "biology",
		Facts: []string{
			"The mitochondrion is the organelle that releases energy from glucose during respiration.",
			"Photosynthesis is the process by which green plants convert light into chemical energy.",
			"The nucleus is the control center that stores genetic material in eukaryotic cells.",
			"Osmosis is the diffusion of water across a selectively permeable membrane.",
			"Enzymes are proteins that speed up chemical reactions without being consumed.",
			"Chlorophyll is the green pigment that absorbs light energy in plant leaves.",
			"Ribosomes are the structures where proteins are assembled from amino acids.",
			"The cell membrane is a thin barrier that controls what enters and leaves the cell.",
			"Mitosis is the type of cell division that produces two identical daughter cells.",
			"Hemoglobin is the protein in red blood cells that carries oxygen through the body.",
		},
	},
	{
		Name: "chemistry",
		Facts: []string{
			"An atom is the smallest unit of an element that keeps its chemical properties.",
			"Covalent bonds are links formed when two atoms share pairs of electrons.",
			"A catalyst is a substance that increases the rate of a reaction without being used up.",
			"Isotopes are atoms of the same element with different numbers of neutrons.",
			"The periodic table is the chart that arranges elements by atomic number.",
			"Oxidation is the loss of electrons by an atom or ion during a reaction.",
			"Acids are compounds that release hydrogen ions when dissolved in water.",
			"Electrolysis is the use of electric current to drive a chemical change.",
			"Noble gases are elements with full outer shells that rarely react with other substances.",
			"Molarity is the number of moles of solute dissolved in one liter of solution.",
		},
	},
	{
		Name: "physics",
		Facts: []string{
			"Velocity is the rate at which an object changes its position in a given direction.",
			"Inertia is the tendency of an object to resist changes in its motion.",
			"Kinetic energy is the energy an object has because of its motion.",
			"Friction is the force that opposes motion between two surfaces in contact.",
			"Wavelength is the distance between two successive crests of a wave.",
			"Refraction is the bending of light as it passes from one medium into another.",
			"Gravity is the attractive force that pulls objects toward the center of the earth.",
			"Resistance is the property of a material that opposes the flow of electric current.",
			"Momentum is the product of the mass and the velocity of a moving object.",
			"Density is the amount of mass contained in a given volume of a substance.",
		},
	},
	{
		Name: "history",
		Facts: []string{
			"The Magna Carta was a charter that limited the powers of the English king in 1215.",
			"The Renaissance was a period of renewed interest in classical art and learning in Europe.",
			"The Industrial Revolution was the shift from hand production to machine manufacturing.",
			"Feudalism was the social system in which vassals received land in exchange for military service.",
			"The Silk Road was a network of trade routes that linked China with the Mediterranean world.",
			"Julius Caesar was the Roman general who crossed the Rubicon and seized power in Rome.",
			"The Reformation was the religious movement that split the Western church in the sixteenth century.",
			"The Cold War was the long rivalry between the United States and the Soviet Union.",
			"Hieroglyphs were the picture symbols that ancient Egyptians used for writing.",
			"The printing press was the invention that allowed books to be produced in large numbers.",
		},
	},
	{
		Name: "geography",
		Facts: []string{
			"A delta is a landform created where a river deposits sediment at its mouth.",
			"The equator is the imaginary line that divides the earth into northern and southern halves.",
			"Tectonic plates are the large slabs of rock that make up the outer shell of the earth.",
			"An archipelago is a chain or cluster of islands formed close together.",
			"The Sahara is the largest hot desert and covers much of northern Africa.",
			"Erosion is the gradual wearing away of rock and soil by wind and water.",
			"A tributary is a smaller stream that flows into a larger river.",
			"Latitude is the angular distance of a place north or south of the equator.",
			"Monsoons are seasonal winds that bring heavy rain to southern Asia.",
			"The Amazon is the river that carries the greatest volume of water into the ocean.",
		},
	},
	{
		Name: "computing",
		Facts: []string{
			"An algorithm is a finite sequence of steps that solves a specific problem.",
			"A compiler is a program that translates source code into machine instructions.",
			"Encryption is the process of encoding data so that only authorized parties can read it.",
			"Recursion is a technique in which a function calls itself to solve smaller instances.",
			"A database index is a structure that speeds up the lookup of rows in a table.",
			"Bandwidth is the maximum rate at which data can travel across a network connection.",
			"An operating system is the software that manages hardware and schedules processes.",
			"Binary is the base two number system that uses only the digits zero and one.",
			"A firewall is a security barrier that filters traffic between trusted and untrusted networks.",
			"Cache memory is a small fast store that keeps copies of frequently used data.",
		},
	},
}
