package constant

// AsciiArtLogo is the banner printed above the root command help.
const AsciiArtLogo = `     _                            _    _ _
 ___| |_ _ __ ___  __ _ _ __ ___ | | _(_) |_
/ __| __| '__/ _ \/ _' | '_ ' _ \| |/ / | __|
\__ \ |_| | |  __/ (_| | | | | | |   <| | |_
|___/\__|_|  \___|\__,_|_| |_| |_|_|\_\_|\__|`
